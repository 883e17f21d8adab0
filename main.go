/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package main

import "github.com/galmarket/eddn-ingest/cmd"

func main() {
	cmd.Execute()
}
