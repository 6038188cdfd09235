package core

import "fmt"

const (
	MaintainerLink    = "https://github.com/dorcha-inc/msysprefix/blob/main/MAINTAINERS.md"
	BugReportTemplate = "\n\n[NOTE]This is most likely a bug in msysprefix, please reach out to the maintainers at %s"
)

// BugReportMessage is appended to errors that indicate an internal fault,
// such as a recovered panic in the CLI.
func BugReportMessage() string {
	return fmt.Sprintf(BugReportTemplate, MaintainerLink)
}

// EnvPrefix is prepended to the tool's own environment overrides (MSYSPREFIX_LOG_LEVEL, ...).
const EnvPrefix = "MSYSPREFIX"
