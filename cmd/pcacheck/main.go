// Binary pcacheck is the command-line front end for the PCA proof checker:
// it reads a policy file and a proof file, parses them, prints the parsed
// policy and the claimed judgment, runs engine.Verify, and reports one of
// three outcomes with a distinct process exit code for each.
//
// Its shape follows a flag-based CLI with multi-outcome exit codes and
// github.com/golang/glog for fatal CLI-level diagnostics.
package main

import (
	"flag"
	"fmt"
	"os"

	log "github.com/golang/glog"

	"github.com/Victor-Crawshaw/pca/analysis"
	"github.com/Victor-Crawshaw/pca/ast"
	"github.com/Victor-Crawshaw/pca/engine"
	"github.com/Victor-Crawshaw/pca/lint"
	"github.com/Victor-Crawshaw/pca/parse"
	"github.com/Victor-Crawshaw/pca/printer"
)

// Exit codes: success, any other error (including parse or
// well-formedness failure), verification failure.
const (
	exitSuccess = 0
	exitError   = 1
	exitFailure = 2
)

var (
	showLint = flag.Bool("lint", false, "print advisory lint findings for the policy and proof")
	repl     = flag.Bool("repl", false, "after loading the policy, read '<proof> : <formula>' lines interactively instead of a single proof file")
)

func main() {
	flag.Parse()
	args := flag.Args()

	if *repl {
		if len(args) != 1 {
			fmt.Fprintln(os.Stderr, "usage: pcacheck -repl <policy-file>")
			os.Exit(exitError)
		}
		runREPL(args[0])
		return
	}

	if len(args) != 2 {
		fmt.Fprintln(os.Stderr, "usage: pcacheck <policy-file> <proof-file>")
		os.Exit(exitError)
	}
	os.Exit(runOnce(args[0], args[1]))
}

// runOnce parses the policy, prints it, checks well-formedness, parses the
// proof and its claimed formula, prints the judgment, verifies, and reports
// the outcome.
func runOnce(policyFile, proofFile string) int {
	policySrc, err := os.ReadFile(policyFile)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return exitError
	}
	gamma, err := parse.ParsePolicy(string(policySrc))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return exitError
	}
	fmt.Println(printer.Policy(gamma))

	if err := analysis.CheckPolicy(gamma); err != nil {
		fmt.Println(err)
		fmt.Println("error")
		return exitError
	}

	proofSrc, err := os.ReadFile(proofFile)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return exitError
	}
	m, p, err := parse.ParseTyping(string(proofSrc))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return exitError
	}
	fmt.Printf("|-\n%s\n\n", printer.Typing(m, p))

	if *showLint {
		for _, f := range lint.Check(gamma, m) {
			fmt.Fprintln(os.Stderr, f)
		}
	}

	if err := engine.Verify(gamma, m, p); err != nil {
		fmt.Println(err)
		fmt.Println("failure")
		return exitFailure
	}
	fmt.Println("success")
	return exitSuccess
}

// runREPL loads and well-formedness-checks a policy once, then repeatedly
// reads "<proof> : <formula>" lines and verifies each against the same
// loaded policy.
func runREPL(policyFile string) {
	policySrc, err := os.ReadFile(policyFile)
	if err != nil {
		log.Exitf("error reading policy file %s: %v", policyFile, err)
	}
	gamma, err := parse.ParsePolicy(string(policySrc))
	if err != nil {
		log.Exitf("error parsing policy %s: %v", policyFile, err)
	}
	if err := analysis.CheckPolicy(gamma); err != nil {
		log.Exitf("policy %s is not well-formed: %v", policyFile, err)
	}
	fmt.Println(printer.Policy(gamma))

	rl, err := newLineReader("pca> ")
	if err != nil {
		log.Exitf("error starting repl: %v", err)
	}
	defer rl.Close()

	for {
		line, err := rl.Readline()
		if err != nil { // io.EOF or readline.ErrInterrupt
			return
		}
		if line == "" {
			continue
		}
		verifyLine(gamma, line)
	}
}

func verifyLine(gamma ast.Policy, line string) {
	m, p, err := parse.ParseTyping(line)
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Printf("|- %s\n", printer.Typing(m, p))
	if err := engine.Verify(gamma, m, p); err != nil {
		fmt.Println(err)
		fmt.Println("failure")
		return
	}
	fmt.Println("success")
}
