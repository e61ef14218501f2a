package change

import (
	"cmp"
	"regexp"
	"slices"
	"strconv"
)

var (
	// [Feature #12345](https://bugs.ruby-lang.org/issues/12345) (optional comment)
	issueRef = regexp.MustCompile(`\[(Feature|Bug) #(\d+)\]\(.+?\)(?: \(([^)]+)\))?`)
	// [GH-4567]
	pullRef = regexp.MustCompile(`\[GH-(\d+)\]`)
)

// ExtractReferences finds every issue and pull request reference in text,
// in the order they appear. Duplicates are kept.
func ExtractReferences(text string) []Discussion {
	type found struct {
		at  int
		ref Discussion
	}
	var refs []found

	for _, m := range issueRef.FindAllStringSubmatchIndex(text, -1) {
		id, err := strconv.Atoi(text[m[4]:m[5]])
		if err != nil {
			continue
		}
		issue := RubyIssue{Kind: IssueKind(text[m[2]:m[3]]), ID: id}
		if m[6] >= 0 {
			issue.Comment = text[m[6]:m[7]]
		}
		refs = append(refs, found{at: m[0], ref: issue})
	}

	for _, m := range pullRef.FindAllStringSubmatchIndex(text, -1) {
		id, err := strconv.Atoi(text[m[2]:m[3]])
		if err != nil {
			continue
		}
		refs = append(refs, found{at: m[0], ref: GitHubPullRequest{ID: id}})
	}

	slices.SortStableFunc(refs, func(a, b found) int { return cmp.Compare(a.at, b.at) })

	out := make([]Discussion, len(refs))
	for i, r := range refs {
		out[i] = r.ref
	}
	return out
}
