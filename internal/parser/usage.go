package parser

import (
	"strings"

	"github.com/Veraticus/hireflow/internal/command"
	"github.com/Veraticus/hireflow/internal/ordering"
)

// Usage lines per command.
var usages = map[command.Kind]string{
	command.KindAdd:     "add n/NAME p/PHONE e/EMAIL j/JOB_POSITION s/STATUS a/ADDRESS [r/RATING] [t/TAG]...",
	command.KindDelete:  "delete INDEX [-f] | delete CRITERIA [-f]",
	command.KindEdit:    "edit INDEX [n/NAME] [p/PHONE] [e/EMAIL] [j/JOB_POSITION] [s/STATUS] [a/ADDRESS] [t/TAG]...",
	command.KindRate:    "rate INDEX r/RATING | rate CRITERIA r/RATING",
	command.KindStatus:  "status INDEX to/STATUS [-f] | status CRITERIA to/STATUS [-f]",
	command.KindSearch:  "search CRITERIA",
	command.KindSort:    sortUsage(),
	command.KindSummary: "summary [CRITERIA]",
	command.KindExport:  "export FILE.csv|FILE.json|FILE.yaml",
	command.KindAvatar:  "avatar INDEX PATH",
	command.KindList:    "list",
	command.KindClear:   "clear",
	command.KindHelp:    "help",
	command.KindExit:    "exit",
}

var helpOrder = []command.Kind{
	command.KindAdd, command.KindEdit, command.KindDelete, command.KindRate, command.KindStatus,
	command.KindSearch, command.KindList, command.KindSort, command.KindSummary, command.KindExport,
	command.KindAvatar, command.KindClear, command.KindHelp, command.KindExit,
}

const criteriaHelp = "CRITERIA: any of n/NAME p/PHONE e/EMAIL j/JOB_POSITION s/STATUS bd/YYYY-MM-DD ad/YYYY-MM-DD"

func sortUsage() string {
	keys := make([]string, len(ordering.Keys))
	for i, k := range ordering.Keys {
		keys[i] = string(k)
	}
	return "sort " + strings.Join(keys, "|") + " [asc|desc]"
}

// Usage returns the usage line for kind.
func Usage(kind command.Kind) string {
	return usages[kind]
}

// HelpText lists every command's usage.
func HelpText() string {
	lines := make([]string, 0, len(helpOrder)+2)
	lines = append(lines, "Commands:")
	for _, k := range helpOrder {
		lines = append(lines, "  "+usages[k])
	}
	lines = append(lines, criteriaHelp)
	return strings.Join(lines, "\n")
}
