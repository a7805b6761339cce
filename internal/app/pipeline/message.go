package pipeline

// MessageKind classifies inbound chat messages. Only audio and voice
// messages enter the pipeline.
type MessageKind int

const (
	KindIgnored MessageKind = iota
	KindAudio
	KindVoice
)

func (k MessageKind) String() string {
	switch k {
	case KindAudio:
		return "audio"
	case KindVoice:
		return "voice"
	default:
		return "ignored"
	}
}

// InboundMessage is one chat event as seen by the pipeline
type InboundMessage struct {
	ChatID    int64
	MessageID int
	Kind      MessageKind
	// FileID is the platform identifier of the attached audio
	FileID string
}

// Stage names one step of the pipeline
type Stage string

const (
	StageResolve   Stage = "resolve"
	StageFetch     Stage = "fetch"
	StageUpload    Stage = "upload"
	StageCreate    Stage = "create"
	StagePoll      Stage = "poll"
	StageSummarize Stage = "summarize"
	StageReply     Stage = "reply"
)

// OutcomeKind is the final result of handling one message
type OutcomeKind string

const (
	OutcomeIgnored           OutcomeKind = "ignored"
	OutcomeDropped           OutcomeKind = "dropped"
	OutcomeNoText            OutcomeKind = "no_text"
	OutcomeRepliedSummary    OutcomeKind = "replied_summary"
	OutcomeRepliedTranscript OutcomeKind = "replied_transcript"
	OutcomeReplyFailed       OutcomeKind = "reply_failed"
)

// Outcome reports how a message left the pipeline. Stage and Err are set
// when a stage failed; Reply holds the text sent, if any.
type Outcome struct {
	Kind         OutcomeKind
	Stage        Stage
	Err          error
	TraceID      string
	TranscriptID string
	Reply        string
}

// Replied reports whether a reply was delivered
func (o Outcome) Replied() bool {
	return o.Kind == OutcomeRepliedSummary || o.Kind == OutcomeRepliedTranscript
}
