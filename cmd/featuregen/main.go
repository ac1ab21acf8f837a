package main

import (
	"fmt"
	"os"

	featuregen "github.com/MohamadsFakih/flutter-feature-generator"
	"github.com/MohamadsFakih/flutter-feature-generator/cmd/featuregen/commands"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]

	switch command {
	case "version", "-v", "--version":
		fmt.Printf("featuregen v%s\n", featuregen.Version())
	case "help", "-h", "--help":
		printUsage()
	case "list":
		if err := commands.HandleList(os.Args[2:]); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "generate":
		if err := commands.HandleGenerate(os.Args[2:]); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "serve":
		if err := commands.HandleServe(os.Args[2:]); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "mcp":
		if err := commands.HandleMCP(os.Args[2:]); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		if suggestion := suggestCommand(command); suggestion != "" {
			fmt.Fprintf(os.Stderr, "Did you mean '%s'?\n", suggestion)
		}
		fmt.Fprintln(os.Stderr)
		printUsage()
		os.Exit(1)
	}
}

// knownCommands are the commands suggestCommand can offer for a typo.
var knownCommands = []string{"list", "generate", "serve", "mcp", "version", "help"}

// suggestCommand returns the known command closest to input within an edit
// distance of 2, or "" when nothing is close enough.
func suggestCommand(input string) string {
	best := ""
	bestDist := 3
	for _, cmd := range knownCommands {
		if d := editDistance(input, cmd); d < bestDist {
			best, bestDist = cmd, d
		}
	}
	return best
}

// editDistance computes the Levenshtein distance between a and b.
func editDistance(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	prev := make([]int, len(rb)+1)
	curr := make([]int, len(rb)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(ra); i++ {
		curr[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			curr[j] = min(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(rb)]
}

func printUsage() {
	fmt.Println(`featuregen - Flutter Feature Generator

Usage:
  featuregen <command> [flags]

Commands:
  list        List the specification's endpoints with selection numbers
  generate    Scaffold a clean-architecture feature from selected endpoints
  serve       Serve the endpoint selection form and generation API over HTTP
  mcp         Run the Model Context Protocol server on stdin/stdout
  version     Show version information
  help        Show this help message

Examples:
  featuregen list
  featuregen list -tag users -format json
  featuregen generate user_profile 1,4,7
  featuregen generate orders all
  featuregen serve -addr 127.0.0.1:3000
  featuregen mcp -project ./app

Run 'featuregen <command> --help' for more information on a command.`)
}
