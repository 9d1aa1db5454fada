package placeholder

import (
	"fmt"
	"regexp"

	"github.com/vbitzceo/voidbitzPromptWorkshop/internal/models"
)

// Reconciliation is the outcome of aligning a variable list with content.
type Reconciliation struct {
	Variables []models.Variable `json:"variables"`
	Added     []string          `json:"added"`
	Removed   []string          `json:"removed"`
}

// Changed reports whether reconciliation altered the variable list.
func (r Reconciliation) Changed() bool {
	return len(r.Added) > 0 || len(r.Removed) > 0
}

// AutoDescription is the description given to variables discovered in content.
func AutoDescription(name string) string {
	return fmt.Sprintf("Auto-detected variable: %s", name)
}

// Reconcile keeps existing in step with the placeholders in content. Variables
// whose placeholder disappeared are dropped, new placeholders get a default
// optional string variable appended, and everything else is left untouched.
// Running it again on its own output reports no changes.
func Reconcile(content string, existing []models.Variable) Reconciliation {
	present := Extract(content)
	inContent := make(map[string]struct{}, len(present))
	for _, name := range present {
		inContent[name] = struct{}{}
	}

	res := Reconciliation{
		Variables: make([]models.Variable, 0, len(present)),
		Added:     []string{},
		Removed:   []string{},
	}

	known := make(map[string]struct{}, len(existing))
	for _, v := range existing {
		known[v.Name] = struct{}{}
		if _, ok := inContent[v.Name]; ok {
			res.Variables = append(res.Variables, v)
			continue
		}
		res.Removed = append(res.Removed, v.Name)
	}

	for _, name := range present {
		if _, ok := known[name]; ok {
			continue
		}
		res.Added = append(res.Added, name)
		res.Variables = append(res.Variables, models.Variable{
			Name:         name,
			Description:  AutoDescription(name),
			Type:         models.VariableTypeString,
			Required:     false,
			DefaultValue: "",
		})
	}
	return res
}

// RenameVariable points every {{oldName}} placeholder at newName. Names are
// compared as literal text after trimming, so a name like "a.b*" only matches
// itself. Text outside placeholders is never touched.
func RenameVariable(content, oldName, newName string) string {
	if oldName == newName || !ValidName(newName) {
		return content
	}
	return replace(content, func(name string) (string, bool) {
		if name != oldName {
			return "", false
		}
		return "{{" + newName + "}}", true
	})
}

var (
	multiSpace   = regexp.MustCompile(`[ \t]{2,}`)
	edgeSpace    = regexp.MustCompile(`(?m)^[ \t]+|[ \t]+$`)
	extraNewline = regexp.MustCompile(`\n{3,}`)
)

// RemoveVariableReferences deletes every {{name}} placeholder and tidies the
// whitespace left behind: runs of spaces collapse to one, lines are trimmed and
// more than one blank line in a row collapses to a single blank line. The
// cleanup may also reflow whitespace elsewhere in content.
func RemoveVariableReferences(content, name string) string {
	out := replace(content, func(n string) (string, bool) {
		return "", n == name
	})
	out = multiSpace.ReplaceAllString(out, " ")
	out = edgeSpace.ReplaceAllString(out, "")
	return extraNewline.ReplaceAllString(out, "\n\n")
}
