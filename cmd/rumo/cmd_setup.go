package main

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"rumo/internal/interview"
	"rumo/internal/logging"
	"rumo/internal/persona"
)

var (
	setupAnswers  string
	setupPrint    bool
	setupSkeleton bool
)

// setupCmd answers the interview from a file instead of the terminal UI.
var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Complete the interview from a YAML answers file",
	Long: `Feeds a YAML answers file through the same interview the terminal UI runs.
Every answer is checked the way the UI would check it: choices must be one of
the listed options, multi-choice answers need exactly the listed number of
picks, and required text cannot be blank.

Use --skeleton to print a commented answers file to start from, and
--answers - to read answers from stdin.`,
	Example: `  rumo setup --skeleton > answers.yaml
  rumo setup --answers answers.yaml --print`,
	RunE: runSetup,
}

func init() {
	setupCmd.Flags().StringVarP(&setupAnswers, "answers", "a", "", "YAML answers file (- for stdin)")
	setupCmd.Flags().BoolVar(&setupPrint, "print", false, "Print the finished document")
	setupCmd.Flags().BoolVar(&setupSkeleton, "skeleton", false, "Print a commented answers file and exit")
}

func runSetup(cmd *cobra.Command, args []string) error {
	schema := persona.Schema()
	if setupSkeleton {
		out, err := answersSkeleton(schema)
		if err != nil {
			return err
		}
		fmt.Print(string(out))
		return nil
	}
	if setupAnswers == "" {
		return fmt.Errorf("--answers is required (try 'rumo setup --skeleton' for a starting point)")
	}

	answers, err := readAnswers(setupAnswers)
	if err != nil {
		return err
	}
	w, err := applyAnswers(schema, answers)
	if err != nil {
		return err
	}

	ctx := commandContext(cmd)
	st, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer st.Close()

	rec, err := st.Save(ctx, w.Profile(), true)
	if err != nil {
		return fmt.Errorf("failed to save profile: %w", err)
	}
	logging.Wizard("setup completed from %s: revision=%s", setupAnswers, rec.Revision)

	if setupPrint {
		doc, _ := w.Document()
		fmt.Print(doc)
		return nil
	}
	fmt.Printf("Profile saved to %s (revision %s).\n", st.Describe(), rec.Revision)
	fmt.Println("Run 'rumo show' to read it or 'rumo copy' to put it on the clipboard.")
	return nil
}

func readAnswers(path string) (map[string]interview.Value, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read answers: %w", err)
	}
	answers := make(map[string]interview.Value)
	if err := yaml.Unmarshal(data, &answers); err != nil {
		return nil, fmt.Errorf("failed to parse answers: %w", err)
	}
	return answers, nil
}

// applyAnswers drives a fresh wizard with answers and returns it completed.
// Errors name the offending field.
func applyAnswers(schema *interview.Schema, answers map[string]interview.Value) (*interview.Wizard, error) {
	var unknown []string
	for k := range answers {
		if !schema.Has(k) {
			unknown = append(unknown, k)
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return nil, fmt.Errorf("unknown field(s): %s", strings.Join(unknown, ", "))
	}

	w := interview.New(schema, interview.WithRenderer(persona.Renderer()))
	for !w.Completed() {
		q, ok := w.Current()
		if !ok {
			return nil, fmt.Errorf("interview stopped at %s", w.Position())
		}
		v, ok := answers[q.Key]
		if !ok {
			if q.Kind == interview.KindFreeText && q.Optional {
				w.Advance()
				continue
			}
			return nil, fmt.Errorf("%s: missing answer (%s)", q.Key, q.Title)
		}
		logging.WizardDebug("setup: answering %s at %s", q.Key, w.Position())

		switch q.Kind {
		case interview.KindSingleChoice:
			if v.IsSet() {
				return nil, fmt.Errorf("%s: expects one of %s, got a list", q.Key, optionList(q))
			}
			if !w.Select(strings.TrimSpace(v.Text)) {
				return nil, fmt.Errorf("%s: %q is not an option (valid: %s)", q.Key, v.Text, optionList(q))
			}
		case interview.KindMultiChoice:
			if !v.IsSet() {
				return nil, fmt.Errorf("%s: expects a list of %d options", q.Key, q.MaxSelect)
			}
			for _, item := range v.Items {
				if !q.HasOption(item) {
					return nil, fmt.Errorf("%s: %q is not an option (valid: %s)", q.Key, item, optionList(q))
				}
			}
			if len(v.Items) != q.MaxSelect {
				return nil, fmt.Errorf("%s: pick exactly %d options, got %d", q.Key, q.MaxSelect, len(v.Items))
			}
			for _, item := range v.Items {
				w.Toggle(item)
			}
			w.Advance()
		case interview.KindFreeText:
			if v.IsSet() {
				return nil, fmt.Errorf("%s: expects text, got a list", q.Key)
			}
			w.SetText(v.Text)
			if !w.Advance() {
				return nil, fmt.Errorf("%s: needs an answer (%s)", q.Key, q.Title)
			}
		}
	}
	return w, nil
}

func optionList(q interview.Question) string {
	values := make([]string, len(q.Options))
	for i, o := range q.Options {
		values[i] = o.Value
	}
	return strings.Join(values, ", ")
}

// answersSkeleton renders every question as a commented YAML key, in
// interview order.
func answersSkeleton(schema *interview.Schema) ([]byte, error) {
	root := &yaml.Node{Kind: yaml.MappingNode}
	for _, sec := range schema.Sections() {
		for i, q := range sec.Questions {
			key := &yaml.Node{Kind: yaml.ScalarNode, Value: q.Key, HeadComment: skeletonComment(q)}
			if i == 0 {
				key.HeadComment = "== " + sec.Title + " ==\n" + key.HeadComment
			}
			root.Content = append(root.Content, key, skeletonValue(q))
		}
	}

	var sb strings.Builder
	enc := yaml.NewEncoder(&sb)
	enc.SetIndent(2)
	if err := enc.Encode(&yaml.Node{Kind: yaml.DocumentNode, Content: []*yaml.Node{root}}); err != nil {
		return nil, fmt.Errorf("failed to encode skeleton: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return []byte(sb.String()), nil
}

func skeletonComment(q interview.Question) string {
	lines := []string{q.Title}
	switch q.Kind {
	case interview.KindSingleChoice:
		lines = append(lines, "one of: "+optionList(q))
	case interview.KindMultiChoice:
		lines = append(lines, fmt.Sprintf("exactly %d of: %s", q.MaxSelect, optionList(q)))
	case interview.KindFreeText:
		if q.Optional {
			lines = append(lines, "optional")
		}
	}
	return strings.Join(lines, "\n")
}

func skeletonValue(q interview.Question) *yaml.Node {
	if q.Kind == interview.KindMultiChoice {
		return &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq", Style: yaml.FlowStyle}
	}
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: "", Style: yaml.DoubleQuotedStyle}
}
