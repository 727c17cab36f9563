// Package chat implements the conversational workflow engine: classify the
// query, optionally retrieve document context, generate a response, and
// return the updated conversation.
package chat

import (
	"context"
	"errors"

	"github.com/nara0/nara/internal/llm"
	"github.com/nara0/nara/internal/log"
	"github.com/nara0/nara/internal/session"
)

// Mode selects the front-end interaction style. The engine carries it
// through unchanged; front-ends use it to decide whether to speak responses.
type Mode string

// Interaction modes.
const (
	ModeText  Mode = "text"
	ModeVoice Mode = "voice"
)

// Generator is the slice of the model provider the workflow needs.
type Generator interface {
	Generate(ctx context.Context, messages []session.Message) (string, error)
	GenerateWithContext(ctx context.Context, query, docContext, systemPrompt string) (string, error)
}

// Retriever supplies formatted document context for a query.
type Retriever interface {
	RetrieveAndFormat(ctx context.Context, query string) (string, error)
}

// Config wires a Workflow. Generator is required; a nil Retriever degrades
// every retrieval to empty context.
type Config struct {
	Generator Generator
	Retriever Retriever

	// Keywords gate the retrieval branch. Empty means DefaultKeywords.
	Keywords []string

	// SystemPrompt overrides the grounded-answer persona.
	SystemPrompt string

	Logger log.Logger
}

func (c *Config) validate() error {
	if c.Generator == nil {
		return errors.New("chat: Generator is required")
	}
	if len(c.Keywords) == 0 {
		c.Keywords = DefaultKeywords
	}
	if c.Logger == nil {
		c.Logger = log.NewNop()
	}
	return nil
}

// Result is the outcome of one conversational turn. Response is always
// populated: on failure it holds the user-facing error text while Err
// carries the typed error for programmatic callers. Messages is a fresh
// slice; the caller's history is never mutated.
type Result struct {
	Response string
	Messages []session.Message
	Context  string
	UseRAG   bool
	Err      error
}

// node names a workflow state.
type node int

const (
	nodeClassify node = iota
	nodeRetrieve
	nodeGenerate
	nodeDirect
	nodeTerminal
)

// Workflow is the turn state machine. Safe for concurrent use across
// different conversations; a single history must not be run concurrently.
type Workflow struct {
	cfg Config
}

// New validates cfg and builds a Workflow.
func New(cfg Config) (*Workflow, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &Workflow{cfg: cfg}, nil
}

// Run executes one turn: Classify, then either Retrieve+Generate or
// DirectRespond. history is read-only; on success the returned Messages is
// history plus the user query and assistant response, in that order. On
// failure Messages equals the input history.
func (w *Workflow) Run(ctx context.Context, query string, history []session.Message, mode Mode) Result {
	res := Result{Messages: history}

	current := nodeClassify
	for current != nodeTerminal {
		if err := ctx.Err(); err != nil {
			return w.fail(res, err)
		}

		switch current {
		case nodeClassify:
			res.UseRAG = classify(query, w.cfg.Keywords)
			w.cfg.Logger.Info("query classified", "use_rag", res.UseRAG, "mode", mode)
			if res.UseRAG {
				current = nodeRetrieve
			} else {
				current = nodeDirect
			}

		case nodeRetrieve:
			res.Context = w.retrieve(ctx, query)
			current = nodeGenerate

		case nodeGenerate:
			response, err := w.cfg.Generator.GenerateWithContext(ctx, query, res.Context, w.cfg.SystemPrompt)
			if err != nil {
				w.cfg.Logger.Error("grounded generation failed", "error", err)
				return w.fail(res, err)
			}
			res.Response = response
			res.Messages = appendTurn(history, query, response)
			current = nodeTerminal

		case nodeDirect:
			prompt := append(cloneMessages(history), session.User(query))
			response, err := w.cfg.Generator.Generate(ctx, prompt)
			if err != nil {
				w.cfg.Logger.Error("direct generation failed", "error", err)
				return w.fail(res, err)
			}
			res.Response = response
			res.Messages = appendTurn(history, query, response)
			current = nodeTerminal
		}
	}

	return res
}

// retrieve fetches formatted context. Retrieval failure is never fatal to
// the turn; generation proceeds with empty context.
func (w *Workflow) retrieve(ctx context.Context, query string) string {
	if w.cfg.Retriever == nil {
		w.cfg.Logger.Warn("no retriever configured, generating without context")
		return ""
	}

	docContext, err := w.cfg.Retriever.RetrieveAndFormat(ctx, query)
	if err != nil {
		w.cfg.Logger.Error("retrieval failed, generating without context", "error", err)
		return ""
	}
	return docContext
}

// fail closes the turn with the user-facing rendering of err. The caller's
// history stands unchanged.
func (w *Workflow) fail(res Result, err error) Result {
	res.Err = err
	res.Response = llm.UserMessage(err)
	return res
}

func cloneMessages(history []session.Message) []session.Message {
	return append(make([]session.Message, 0, len(history)+2), history...)
}

func appendTurn(history []session.Message, query, response string) []session.Message {
	return append(cloneMessages(history), session.User(query), session.Assistant(response))
}
