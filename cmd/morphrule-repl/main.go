/*
Command morphrule-repl is an interactive console for exercising a
grammar against a line of tagged tokens: it runs FindAll and renders
each match as a tree alongside its interpreted fact, grounded on
gorgo's T.REPL (terex/terexlang/trepl/repl.go).

Unlike T.REPL, which evaluates s-expressions against a symbol
environment, this console has a single fixed job: parse one line of
`value/Kind[:normalized][grams]` tokens (see package testtoken) against
a named grammar from an in-process registry, and print what matched.
*/
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"github.com/pterm/pterm"
	"github.com/spf13/pflag"

	"github.com/npillmayer/schuko/gconf"
	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"

	"github.com/npillmayer/morphrule/earley"
	"github.com/npillmayer/morphrule/examples/names"
	"github.com/npillmayer/morphrule/interp"
	"github.com/npillmayer/morphrule/internal/testtoken"
)

func tracer() tracing.Trace {
	return tracing.Select("morphrule.repl")
}

// registry maps a grammar name to its ready-to-use Parser, starting
// with the names example grammar (§8 supplement).
var registry = map[string]*earley.Parser{
	"names": names.Parser,
}

func main() {
	grammarName := pflag.String("grammar", "names", "name of the registered grammar to match against")
	traceLevel := pflag.String("trace", "Info", "trace level [Debug|Info|Error]")
	tokensFile := pflag.String("tokens", "", "read tagged tokens from a fixture file instead of the console")
	panicOnStuck := pflag.Bool("panic-on-stuck", false, "panic instead of reporting an empty FindAll result")
	pflag.Parse()

	gtraceSetup()
	tracer().SetTraceLevel(tracing.TraceLevelFromString(*traceLevel))
	gconf.Set("panic-on-parser-stuck", *panicOnStuck)

	parser, ok := registry[*grammarName]
	if !ok {
		pterm.Error.Printfln("unknown grammar %q", *grammarName)
		os.Exit(1)
	}

	if *tokensFile != "" {
		runFile(parser, *tokensFile)
		return
	}
	runInteractive(parser)
}

func gtraceSetup() {
	gtrace.SyntaxTracer = gologadapter.New()
	pterm.Info.Prefix = pterm.Prefix{Text: "  morphrule", Style: pterm.NewStyle(pterm.BgCyan, pterm.FgBlack)}
	pterm.Error.Prefix = pterm.Prefix{Text: "  error", Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack)}
}

func runFile(parser *earley.Parser, path string) {
	data, err := os.ReadFile(path)
	if err != nil {
		pterm.Error.Println(err.Error())
		os.Exit(2)
	}
	for _, line := range strings.Split(string(data), "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		evalLine(parser, line)
	}
}

func runInteractive(parser *earley.Parser) {
	repl, err := readline.New("morphrule> ")
	if err != nil {
		pterm.Error.Println(err.Error())
		os.Exit(3)
	}
	defer repl.Close()
	pterm.Info.Println("Welcome to morphrule-repl. Enter value/Kind[:normalized][grams] tokens; quit with <ctrl>D.")
	for {
		line, err := repl.Readline()
		if err != nil {
			break
		}
		if strings.TrimSpace(line) == "" {
			continue
		}
		evalLine(parser, line)
	}
	pterm.Info.Println("Good bye!")
}

func evalLine(parser *earley.Parser, line string) {
	tokens, err := testtoken.Parse(line)
	if err != nil {
		pterm.Error.Println(err.Error())
		return
	}
	matches := parser.FindAll(tokens)
	if len(matches) == 0 {
		if gconf.GetBool("panic-on-parser-stuck") {
			panic(fmt.Sprintf("morphrule-repl: no match for %q", line))
		}
		pterm.Info.Println("no match")
		return
	}
	for i, m := range matches {
		renderMatch(i, m)
	}
}

func renderMatch(i int, m *earley.Match) {
	pterm.Println(fmt.Sprintf("match %d: [%d,%d) %q", i, m.Start, m.Stop, m.Text()))
	ll := pterm.LeveledList{{Level: 0, Text: m.Text()}}
	for _, tok := range m.Tokens {
		ll = append(ll, pterm.LeveledListItem{Level: 1, Text: tok.String()})
	}
	root := pterm.NewTreeFromLeveledList(ll)
	pterm.DefaultTree.WithRoot(root).Render()

	result, err := interp.Interpret(m.Tree(), nil)
	if err != nil {
		pterm.Error.Println(err.Error())
		return
	}
	pterm.Info.Printfln("fact(match) = %+v", result)
}
