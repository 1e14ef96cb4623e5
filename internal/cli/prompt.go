package cli

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// confirm asks a yes/no question until it gets y, yes, n or no. An empty
// answer takes the default; input ending without a valid answer is an error.
func confirm(reader *bufio.Reader, out io.Writer, question string, defaultYes bool) (bool, error) {
	hint := "y/N"
	if defaultYes {
		hint = "Y/n"
	}
	for {
		fmt.Fprintf(out, "%s [%s]: ", question, hint)
		line, err := reader.ReadString('\n')
		if err != nil && err != io.EOF {
			return false, err
		}
		switch answer := strings.ToLower(strings.TrimSpace(line)); answer {
		case "":
			return defaultYes, nil
		case "y", "yes":
			return true, nil
		case "n", "no":
			return false, nil
		default:
			if err == io.EOF {
				return false, fmt.Errorf("expected yes or no, got %q", answer)
			}
			fmt.Fprintln(out, "Answer y or n.")
		}
	}
}
