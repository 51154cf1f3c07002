package commands

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/leapdl/internal/cli/output"
	"github.com/leapstack-labs/leapdl/pkg/lint"
	_ "github.com/leapstack-labs/leapdl/pkg/lint/rules" // register built-in rules
)

// RulesOptions holds options for the rules command.
type RulesOptions struct {
	Group   string // Filter by group
	Verbose bool   // Show full documentation
	Format  string // Output format
}

// NewRulesCommand creates the rules command.
func NewRulesCommand() *cobra.Command {
	opts := &RulesOptions{}
	cmd := &cobra.Command{
		Use:   "rules [rule-id]",
		Short: "List available lint rules",
		Long: `List all available lint rules with their documentation.

Rules are organized by group (facts, relations, variables).
Use --verbose to see full documentation including rationale.

Output adapts to environment:
  - Terminal: Styled output with colors
  - Piped/Scripted: Markdown format
  - JSON/YAML: Machine-readable format`,
		Example: `  # List all rules
  leapdl rules

  # Show details for a specific rule
  leapdl rules DL02

  # List rules in the relations group
  leapdl rules --group relations

  # Output as JSON
  leapdl rules --format json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				return showRule(cmd, args[0], opts)
			}
			return listRules(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Group, "group", "g", "", "Filter by group")
	cmd.Flags().BoolVarP(&opts.Verbose, "verbose", "V", false, "Show full documentation")
	cmd.Flags().StringVarP(&opts.Format, "format", "f", "", "Output format: text, markdown, json, yaml")

	return cmd
}

func listRules(cmd *cobra.Command, opts *RulesOptions) error {
	cmdCtx := NewCommandContextWithoutEngine(cmd)
	r := cmdCtx.WithFormat(cmd, opts.Format)

	rules := filterRulesByGroup(ruleInfos(lint.GetAll()), opts.Group)

	// Sort by group, then ID
	sort.SliceStable(rules, func(i, j int) bool {
		if rules[i].Group != rules[j].Group {
			return rules[i].Group < rules[j].Group
		}
		return rules[i].ID < rules[j].ID
	})

	if ok, err := r.Structured(newRulesOutput(rules)); ok {
		return err
	}
	if r.EffectiveMode() == output.ModeMarkdown {
		listRulesMarkdown(r, rules, opts.Verbose)
		return nil
	}
	listRulesText(r, rules, opts.Verbose)
	return nil
}

func ruleInfos(defs []lint.RuleDef) []lint.RuleInfo {
	infos := make([]lint.RuleInfo, len(defs))
	for i, def := range defs {
		infos[i] = def.Info()
	}
	return infos
}

func filterRulesByGroup(rules []lint.RuleInfo, group string) []lint.RuleInfo {
	if group == "" {
		return rules
	}

	var filtered []lint.RuleInfo
	for _, r := range rules {
		if strings.EqualFold(r.Group, group) {
			filtered = append(filtered, r)
		}
	}
	return filtered
}

func showRule(cmd *cobra.Command, ruleID string, opts *RulesOptions) error {
	cmdCtx := NewCommandContextWithoutEngine(cmd)
	r := cmdCtx.WithFormat(cmd, opts.Format)

	def, ok := lint.GetByID(strings.ToUpper(ruleID))
	if !ok {
		return fmt.Errorf("rule %q not found", ruleID)
	}
	rule := def.Info()

	if ok, err := r.Structured(rule); ok {
		return err
	}
	if r.EffectiveMode() == output.ModeMarkdown {
		showRuleMarkdown(r, rule)
		return nil
	}
	showRuleText(r, rule)
	return nil
}

// listRulesText outputs rules in styled text format.
func listRulesText(r *output.Renderer, rules []lint.RuleInfo, verbose bool) {
	styles := r.Styles()

	r.Println("")
	r.Println(styles.Header1.Render(fmt.Sprintf("Lint Rules (%d)", len(rules))))
	r.Println("")

	rows := make([][]string, 0, len(rules))
	for _, rule := range rules {
		rows = append(rows, []string{
			rule.ID,
			rule.Name,
			output.Title(rule.Group),
			severityStyle(styles, rule.DefaultSeverity).Render(rule.DefaultSeverity.String()),
			rule.Description,
		})
	}
	r.Table([]string{"ID", "Name", "Group", "Severity", "Description"}, rows)

	if verbose {
		for _, rule := range rules {
			if rule.Rationale == "" {
				continue
			}
			r.Println("")
			r.Println(styles.Bold.Render(rule.ID) + "  " + styles.Muted.Render(truncateOneLine(rule.Rationale, 100)))
		}
	}

	r.Println("")
	r.Println(styles.Muted.Render("Use 'leapdl rules <rule-id>' for detailed documentation"))
	r.Println("")
}

// listRulesMarkdown outputs rules in markdown format.
func listRulesMarkdown(r *output.Renderer, rules []lint.RuleInfo, verbose bool) {
	r.Println("# Lint Rules")
	r.Println("")

	currentGroup := ""
	for _, rule := range rules {
		if rule.Group != currentGroup {
			if currentGroup != "" {
				r.Println("")
			}
			currentGroup = rule.Group
			r.Println("## " + output.Title(currentGroup))
			r.Println("")
		}

		r.Printf("- **%s** - %s (`%s`)\n", rule.ID, rule.Name, rule.DefaultSeverity.String())
		if verbose {
			r.Println("  " + rule.Description)
			if rule.Rationale != "" {
				r.Println("  > " + rule.Rationale)
			}
		}
	}

	r.Println("")
}

// RulesOutput is the structured output for rules listing.
type RulesOutput struct {
	Rules []lint.RuleInfo `json:"rules" yaml:"rules"`
	Count int             `json:"count" yaml:"count"`
}

func newRulesOutput(rules []lint.RuleInfo) RulesOutput {
	if rules == nil {
		rules = []lint.RuleInfo{}
	}
	return RulesOutput{Rules: rules, Count: len(rules)}
}

// showRuleText displays detailed rule info in text format.
func showRuleText(r *output.Renderer, rule lint.RuleInfo) {
	styles := r.Styles()

	r.Println("")
	r.Println(styles.Header1.Render(fmt.Sprintf("%s - %s", rule.ID, rule.Name)))
	r.Println("")

	r.Printf("  %s: %s\n", styles.Bold.Render("Group"), rule.Group)
	r.Printf("  %s: %s\n", styles.Bold.Render("Severity"), severityStyle(styles, rule.DefaultSeverity).Render(rule.DefaultSeverity.String()))
	r.Println("")

	r.Println(styles.Bold.Render("Description"))
	r.Println("  " + rule.Description)
	r.Println("")

	if rule.Rationale != "" {
		r.Println(styles.Bold.Render("Why This Matters"))
		r.Println("  " + rule.Rationale)
		r.Println("")
	}

	if rule.BadExample != "" {
		r.Println(styles.Bold.Render("Bad Example"))
		r.Println(styles.Muted.Render(output.Indent(rule.BadExample, 2)))
		r.Println("")
	}

	if rule.GoodExample != "" {
		r.Println(styles.Bold.Render("Good Example"))
		r.Println(styles.Success.Render(output.Indent(rule.GoodExample, 2)))
		r.Println("")
	}
}

// showRuleMarkdown displays detailed rule info in markdown format.
func showRuleMarkdown(r *output.Renderer, rule lint.RuleInfo) {
	r.Printf("# %s - %s\n\n", rule.ID, rule.Name)
	r.Printf("**Group:** %s | **Severity:** `%s`\n\n", rule.Group, rule.DefaultSeverity.String())
	r.Println(rule.Description)
	r.Println("")

	if rule.Rationale != "" {
		r.Println("## Why This Matters")
		r.Println("")
		r.Println(rule.Rationale)
		r.Println("")
	}

	if rule.BadExample != "" {
		r.Println("## Bad Example")
		r.Println("")
		r.Println("```prolog")
		r.Println(rule.BadExample)
		r.Println("```")
		r.Println("")
	}

	if rule.GoodExample != "" {
		r.Println("## Good Example")
		r.Println("")
		r.Println("```prolog")
		r.Println(rule.GoodExample)
		r.Println("```")
		r.Println("")
	}
}

func truncateOneLine(s string, maxLen int) string {
	s = strings.ReplaceAll(s, "\n", " ")
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
