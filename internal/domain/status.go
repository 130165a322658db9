package domain

import "strings"

// PipelineStatus is the Job/Application lifecycle label.
// Any member may follow any other member; there is no transition graph.
type PipelineStatus string

const (
	PipelineWishlist  PipelineStatus = "WISHLIST"
	PipelineApplied   PipelineStatus = "APPLIED"
	PipelineInterview PipelineStatus = "INTERVIEW"
	PipelineOffer     PipelineStatus = "OFFER"
	PipelineRejected  PipelineStatus = "REJECTED"
	PipelineAccepted  PipelineStatus = "ACCEPTED"
)

// AllPipelineStatuses lists the vocabulary in pipeline display order.
var AllPipelineStatuses = []PipelineStatus{
	PipelineWishlist,
	PipelineApplied,
	PipelineInterview,
	PipelineOffer,
	PipelineRejected,
	PipelineAccepted,
}

func (s PipelineStatus) Valid() bool {
	switch s {
	case PipelineWishlist, PipelineApplied, PipelineInterview, PipelineOffer, PipelineRejected, PipelineAccepted:
		return true
	}
	return false
}

func ParsePipelineStatus(raw string) (PipelineStatus, bool) {
	s := PipelineStatus(strings.TrimSpace(raw))
	return s, s.Valid()
}

// InterviewStatus is the scheduling lifecycle of an Interview.
type InterviewStatus string

const (
	InterviewScheduled   InterviewStatus = "SCHEDULED"
	InterviewCompleted   InterviewStatus = "COMPLETED"
	InterviewCancelled   InterviewStatus = "CANCELLED"
	InterviewRescheduled InterviewStatus = "RESCHEDULED"
)

var AllInterviewStatuses = []InterviewStatus{
	InterviewScheduled,
	InterviewCompleted,
	InterviewCancelled,
	InterviewRescheduled,
}

func (s InterviewStatus) Valid() bool {
	switch s {
	case InterviewScheduled, InterviewCompleted, InterviewCancelled, InterviewRescheduled:
		return true
	}
	return false
}

// Upcoming reports whether an interview in this status still has to happen.
func (s InterviewStatus) Upcoming() bool {
	switch s {
	case InterviewScheduled, InterviewRescheduled:
		return true
	case InterviewCompleted, InterviewCancelled:
		return false
	}
	return false
}

func ParseInterviewStatus(raw string) (InterviewStatus, bool) {
	s := InterviewStatus(strings.TrimSpace(raw))
	return s, s.Valid()
}

// InterviewType is a closed set of interview formats.
type InterviewType string

const (
	InterviewPhone      InterviewType = "PHONE"
	InterviewVideo      InterviewType = "VIDEO"
	InterviewOnsite     InterviewType = "ONSITE"
	InterviewVirtual    InterviewType = "VIRTUAL"
	InterviewGroup      InterviewType = "GROUP"
	InterviewTechnical  InterviewType = "TECHNICAL"
	InterviewBehavioral InterviewType = "BEHAVIORAL"
	InterviewFinal      InterviewType = "FINAL"
)

var AllInterviewTypes = []InterviewType{
	InterviewPhone,
	InterviewVideo,
	InterviewOnsite,
	InterviewVirtual,
	InterviewGroup,
	InterviewTechnical,
	InterviewBehavioral,
	InterviewFinal,
}

func (t InterviewType) Valid() bool {
	switch t {
	case InterviewPhone, InterviewVideo, InterviewOnsite, InterviewVirtual,
		InterviewGroup, InterviewTechnical, InterviewBehavioral, InterviewFinal:
		return true
	}
	return false
}

func ParseInterviewType(raw string) (InterviewType, bool) {
	t := InterviewType(strings.TrimSpace(raw))
	return t, t.Valid()
}
