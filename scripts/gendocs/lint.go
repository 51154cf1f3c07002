package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/leapstack-labs/leapdl/pkg/lint"
	_ "github.com/leapstack-labs/leapdl/pkg/lint/rules"
)

// groupDescriptions provides human-readable descriptions for rule groups.
var groupDescriptions = map[string]string{
	"facts":     "Rules about ground facts.",
	"relations": "Rules about how relations are defined and used across a program.",
	"variables": "Rules about variable binding in rules.",
}

// generateLintDocs generates all lint documentation files.
func generateLintDocs(outDir string) error {
	log.Printf("Generating lint docs to %s", outDir)

	if err := os.MkdirAll(outDir, 0750); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	rules := make([]lint.RuleInfo, 0)
	for _, def := range lint.GetAll() {
		rules = append(rules, def.Info())
	}

	if err := os.WriteFile(filepath.Join(outDir, "index.md"), lintIndexDoc(rules), 0600); err != nil {
		return err
	}
	log.Printf("  Generated index.md")

	if err := os.WriteFile(filepath.Join(outDir, "rules.md"), lintRulesDoc(rules), 0600); err != nil {
		return err
	}
	log.Printf("  Generated rules.md")

	return nil
}

// lintIndexDoc renders the linting overview page.
func lintIndexDoc(rules []lint.RuleInfo) []byte {
	w := NewMarkdownWriter()

	w.Frontmatter("Linting", "Lint rules for LeapDL programs")
	w.GeneratedMarker()

	w.Header(1, "Linting")
	w.Paragraph(fmt.Sprintf("LeapDL includes **%d lint rules** that run after a program parses. "+
		"`leapdl check` reports their diagnostics and fails on any error-level finding.", len(rules)))

	w.Header(2, "Severity Levels")
	w.Table(
		[]string{"Severity", "Description"},
		[][]string{
			{InlineCode("error"), "Critical issue that should be fixed"},
			{InlineCode("warning"), "Potential issue that should be reviewed"},
			{InlineCode("info"), "Informational feedback"},
			{InlineCode("hint"), "Suggestion for improvement"},
		},
	)

	w.Header(2, "Configuration")
	w.Paragraph("Rules can be configured in `leapdl.yaml`:")
	w.CodeBlock("yaml", `lint:
  disabled: [DL02]   # rules that are not run
  severity:
    DL04: warning    # override severity`)

	w.Header(2, "Rule Groups")
	var rows [][]string
	for _, group := range sortedGroups(groupRules(rules)) {
		rows = append(rows, []string{
			fmt.Sprintf("[%s](/linting/rules#%s)", capitalizeFirst(group), group),
			groupDescriptions[group],
		})
	}
	w.Table([]string{"Group", "Description"}, rows)

	return w.Bytes()
}

// lintRulesDoc renders the full rule reference.
func lintRulesDoc(rules []lint.RuleInfo) []byte {
	w := NewMarkdownWriter()

	w.Frontmatter("Lint Rules", "Lint rule reference for LeapDL")
	w.GeneratedMarker()

	w.Header(1, "Lint Rules")
	grouped := groupRules(rules)
	groups := sortedGroups(grouped)
	w.Paragraph(fmt.Sprintf("LeapDL includes %d lint rules organized into %d groups.", len(rules), len(groups)))

	for _, group := range groups {
		w.Line(fmt.Sprintf("## %s {#%s}", capitalizeFirst(group), group))
		w.Newline()

		if desc, ok := groupDescriptions[group]; ok {
			w.Paragraph(desc)
		}

		for _, rule := range grouped[group] {
			writeRuleDoc(w, rule)
		}
	}

	return w.Bytes()
}

// groupRules organizes rules by their Group field, sorted by ID within a group.
func groupRules(rules []lint.RuleInfo) map[string][]lint.RuleInfo {
	grouped := make(map[string][]lint.RuleInfo)
	for _, r := range rules {
		grouped[r.Group] = append(grouped[r.Group], r)
	}
	for group := range grouped {
		sort.Slice(grouped[group], func(i, j int) bool {
			return grouped[group][i].ID < grouped[group][j].ID
		})
	}
	return grouped
}

func sortedGroups(grouped map[string][]lint.RuleInfo) []string {
	groups := make([]string, 0, len(grouped))
	for g := range grouped {
		groups = append(groups, g)
	}
	sort.Strings(groups)
	return groups
}

// capitalizeFirst capitalizes the first letter of a string.
func capitalizeFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// writeRuleDoc writes detailed documentation for a single rule.
func writeRuleDoc(w *MarkdownWriter, rule lint.RuleInfo) {
	// Rule header with anchor: ### DL03 - relations.arity_mismatch {#DL03}
	w.Line(fmt.Sprintf("### %s - %s {#%s}", rule.ID, rule.Name, rule.ID))
	w.Newline()

	w.Line(fmt.Sprintf("**Severity:** %s", InlineCode(rule.DefaultSeverity.String())))
	w.Newline()

	w.Paragraph(cleanDescription(rule.Description))

	if rule.Rationale != "" {
		w.Header(4, "Why This Matters")
		w.Paragraph(rule.Rationale)
	}

	if rule.BadExample != "" {
		w.Header(4, "Bad")
		w.CodeBlock("prolog", rule.BadExample)
	}

	if rule.GoodExample != "" {
		w.Header(4, "Good")
		w.CodeBlock("prolog", rule.GoodExample)
	}

	w.Line("---")
	w.Newline()
}
