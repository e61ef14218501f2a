package change

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Discussion is a reference to the place where a change was discussed.
// The set of implementations is closed: RubyIssue and GitHubPullRequest.
type Discussion interface {
	// Label is the short display text, e.g. "Feature #12345" or "GH-#4567".
	Label() string
	// URL is the canonical link.
	URL() string
	// Note is an optional trailing remark, possibly empty.
	Note() string

	discussion()
}

// IssueKind is the tracker category of a Ruby issue.
type IssueKind string

const (
	IssueFeature IssueKind = "Feature"
	IssueBug     IssueKind = "Bug"
)

// RubyIssue references bugs.ruby-lang.org.
type RubyIssue struct {
	Kind    IssueKind
	ID      int
	Comment string
}

func (i RubyIssue) Label() string { return fmt.Sprintf("%s #%d", i.Kind, i.ID) }
func (i RubyIssue) URL() string   { return fmt.Sprintf("https://bugs.ruby-lang.org/issues/%d", i.ID) }
func (i RubyIssue) Note() string  { return i.Comment }
func (RubyIssue) discussion()     {}

// GitHubPullRequest references a pull request on github.com/ruby/ruby.
type GitHubPullRequest struct {
	ID int
}

func (p GitHubPullRequest) Label() string { return fmt.Sprintf("GH-#%d", p.ID) }
func (p GitHubPullRequest) URL() string {
	return fmt.Sprintf("https://github.com/ruby/ruby/pull/%d", p.ID)
}
func (GitHubPullRequest) Note() string { return "" }
func (GitHubPullRequest) discussion()  {}

// Discussions is an ordered list of references with a tagged YAML form.
type Discussions []Discussion

const (
	discussionIssue = "issue"
	discussionPull  = "pull"
)

type discussionDoc struct {
	Type    string    `yaml:"type"`
	Kind    IssueKind `yaml:"kind,omitempty"`
	ID      int       `yaml:"id"`
	Comment string    `yaml:"comment,omitempty"`
}

// MarshalYAML encodes each reference as a mapping with a type tag.
func (d Discussions) MarshalYAML() (interface{}, error) {
	docs := make([]discussionDoc, 0, len(d))
	for _, ref := range d {
		switch v := ref.(type) {
		case RubyIssue:
			docs = append(docs, discussionDoc{Type: discussionIssue, Kind: v.Kind, ID: v.ID, Comment: v.Comment})
		case GitHubPullRequest:
			docs = append(docs, discussionDoc{Type: discussionPull, ID: v.ID})
		default:
			return nil, fmt.Errorf("unsupported discussion type %T", ref)
		}
	}
	return docs, nil
}

// UnmarshalYAML decodes the tagged form written by MarshalYAML.
func (d *Discussions) UnmarshalYAML(value *yaml.Node) error {
	var docs []discussionDoc
	if err := value.Decode(&docs); err != nil {
		return err
	}

	out := make(Discussions, 0, len(docs))
	for i, doc := range docs {
		switch doc.Type {
		case discussionIssue:
			if doc.Kind != IssueFeature && doc.Kind != IssueBug {
				return fmt.Errorf("discussions[%d]: unknown issue kind %q", i, doc.Kind)
			}
			out = append(out, RubyIssue{Kind: doc.Kind, ID: doc.ID, Comment: doc.Comment})
		case discussionPull:
			out = append(out, GitHubPullRequest{ID: doc.ID})
		default:
			return fmt.Errorf("discussions[%d]: unknown type %q", i, doc.Type)
		}
	}
	*d = out
	return nil
}
