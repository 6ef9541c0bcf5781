// Copyright Safing ICS Technologies GmbH. Use of this source code is governed by the AGPL license that can be found in the LICENSE file.

package log

import (
	"fmt"
)

const rightArrow = "▶"

func (s Severity) String() string {
	switch s {
	case TraceLevel:
		return "TRAC"
	case DebugLevel:
		return "DEBU"
	case InfoLevel:
		return "INFO"
	case WarningLevel:
		return "WARN"
	case ErrorLevel:
		return "ERRO"
	case CriticalLevel:
		return "CRIT"
	default:
		return "NONE"
	}
}

func formatLine(line *logLine) string {
	if line.line == 0 {
		return fmt.Sprintf("%s ? %s %s %s", line.timestamp.Format("060102 15:04:05.000"), rightArrow, line.level.String(), line.msg)
	}

	fLen := len(line.file)
	fPartStart := fLen - 10
	if fPartStart < 0 {
		fPartStart = 0
	}
	return fmt.Sprintf("%s %s:%03d %s %s %s", line.timestamp.Format("060102 15:04:05.000"), line.file[fPartStart:], line.line, rightArrow, line.level.String(), line.msg)
}
