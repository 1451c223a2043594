package domains

type PullRequestState string

const (
	StateOpen       PullRequestState = "OPEN"
	StateMerged     PullRequestState = "MERGED"
	StateDeclined   PullRequestState = "DECLINED"
	StateSuperseded PullRequestState = "SUPERSEDED"
)

type PullRequest struct {
	ID          int64
	Title       string
	Description string
	State       PullRequestState
}

// PullRequestUpdate carries the metadata written back to the host.
type PullRequestUpdate struct {
	State       PullRequestState
	Title       string
	Description string
}

// ReviewIssue is a single non-blank line of the assistant's answer.
// It is posted verbatim as one comment.
type ReviewIssue string
