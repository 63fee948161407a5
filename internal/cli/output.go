package cli

import (
	"fmt"
	"strings"
)

// PrintHeader prints the runner header
func PrintHeader(dataset string, total int) {
	fmt.Printf("attachment-match: %s (%d cases)\n", dataset, total)
	fmt.Println(strings.Repeat("-", 60))
}

// PrintCaseResult prints one case outcome. Passing cases are only printed
// in verbose mode.
func PrintCaseResult(r CaseResult, verbose bool) {
	if r.Passed && !verbose {
		return
	}
	status := "PASS"
	if !r.Passed {
		status = "FAIL"
	}
	fmt.Printf("%s %-32s %s\n", status, r.Case.Name, r.Detail())
}

// PrintSummary prints the run summary
func PrintSummary(results []CaseResult) (passed, failed int) {
	for _, r := range results {
		if r.Passed {
			passed++
		} else {
			failed++
		}
	}
	fmt.Println(strings.Repeat("-", 60))
	fmt.Printf("Summary: Total=%d Passed=%d Failed=%d\n", len(results), passed, failed)
	return passed, failed
}
