package explorer

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Interact runs the main interactive loop.
func (e *Explorer) Interact() {
	fmt.Printf("%s", e.header())
	reader := bufio.NewReader(os.Stdin)
	for {
		fmt.Printf("%s", e.prompt())

		optionS, err := reader.ReadString('\n')
		if err != nil {
			fmt.Println("Invalid input! Try again")
			continue
		}
		option, err := strconv.Atoi(strings.Replace(optionS, "\n", "", -1))
		if err != nil {
			fmt.Println("Invalid input! Try again")
			continue
		}
		fmt.Println("------------------------------------")
		switch option {
		case 1:
			s := e.Summary()
			fmt.Printf("Traces: %d\nDistinct schedules: %d\nDeadlocks: %d\nViolations: %d\nAborted: %d\n",
				s.Traces, s.DistinctSchedules, s.Deadlocks, s.Violations, s.Aborted)
		case 2:
			for schedule, count := range e.DistinctSchedules() {
				fmt.Printf("%s: %d\n", schedule, count)
			}
		case 3:
			fmt.Printf("Enter trace number (1-%d): ", len(e.Traces))
			traceNoS, err := reader.ReadString('\n')
			if err != nil {
				fmt.Println("Invalid input! Try again")
				continue
			}
			traceNo, err := strconv.Atoi(strings.Replace(traceNoS, "\n", "", -1))
			if err != nil {
				fmt.Println("Invalid input! Not a number. Try again")
				continue
			}
			if traceNo < 1 || traceNo > len(e.Traces) {
				fmt.Printf("Invalid input! Should be between (1-%d). Try again\n", len(e.Traces))
				continue
			}
			fmt.Printf("%s", e.formatTrace(traceNo-1))
		case 4:
			fmt.Println("Quitting! Thank you")
			return
		default:
			fmt.Println("Wrong choice! Try again!")
		}
	}
}

func (e *Explorer) header() string {
	return `
Welcome to the trace explorer!
	`
}

func (e *Explorer) prompt() string {
	return fmt.Sprintf(`
Loaded %d traces from %s. Choose an option:
1. Summary
2. Distinct schedules
3. Show a trace
4. Quit
Option: `, len(e.Traces), e.TracesFile)
}
