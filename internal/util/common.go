package util

import "github.com/sirupsen/logrus"

// ContinueOrFatal aborts the process on a bootstrap-time error. Only for
// wiring edges; the run loop itself never fatals on a per-message error.
func ContinueOrFatal(err error) {
	if err != nil {
		logrus.Fatal(err)
	}
}
