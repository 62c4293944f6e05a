package voice

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	openai "github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubCompleter struct {
	reply    string
	err      error
	messages []openai.ChatCompletionMessage
}

func (s *stubCompleter) Complete(_ context.Context, messages []openai.ChatCompletionMessage) (string, error) {
	s.messages = messages
	return s.reply, s.err
}

func newTestAgent(stub *stubCompleter) *Agent {
	return NewAgent(stub, zerolog.Nop())
}

func TestInterpretParsesEnvelope(t *testing.T) {
	stub := &stubCompleter{reply: `{"action":"search_and_add","params":{"query":"milk","quantity":2},"response":"Adding milk.","conversationState":{"state":"adding_items"},"confidence":0.9}`}
	agent := newTestAgent(stub)

	env := agent.Interpret(context.Background(), "user-1", Request{Text: "add 2 milk"})
	assert.Equal(t, ActionSearchAndAdd, env.Action)
	assert.Equal(t, "milk", env.Params["query"])
	assert.Equal(t, "Adding milk.", env.Response)
	assert.Equal(t, "adding_items", env.ConversationState.State)
	assert.InDelta(t, 0.9, env.Confidence, 0.001)
}

func TestInterpretFallbackOnCompleterError(t *testing.T) {
	stub := &stubCompleter{err: errors.New("api unavailable")}
	agent := newTestAgent(stub)

	env := agent.Interpret(context.Background(), "user-1", Request{Text: "add milk"})
	assert.Equal(t, ActionFallback, env.Action)
	assert.Equal(t, "idle", env.ConversationState.State)
	assert.Zero(t, env.Confidence)
}

func TestInterpretFallbackOnMalformedJSON(t *testing.T) {
	stub := &stubCompleter{reply: "sorry, I can't do that"}
	agent := newTestAgent(stub)

	env := agent.Interpret(context.Background(), "user-1", Request{Text: "add milk"})
	assert.Equal(t, ActionFallback, env.Action)
}

func TestInterpretFallbackOnMissingAction(t *testing.T) {
	stub := &stubCompleter{reply: `{"response":"hello"}`}
	agent := newTestAgent(stub)

	env := agent.Interpret(context.Background(), "user-1", Request{Text: "hi"})
	assert.Equal(t, ActionFallback, env.Action)
}

func TestInterpretInheritsConversationState(t *testing.T) {
	stub := &stubCompleter{reply: `{"action":"ask","params":{},"response":"Which address?","confidence":0.6}`}
	agent := newTestAgent(stub)

	prev := &ConversationState{State: "requesting_address", Context: map[string]any{"pending": "set_default"}}
	env := agent.Interpret(context.Background(), "user-1", Request{Text: "set default", ConversationState: prev})

	require.NotNil(t, env.ConversationState)
	assert.Equal(t, "requesting_address", env.ConversationState.State)
	assert.Equal(t, "set_default", env.ConversationState.Context["pending"])
}

func TestInterpretReplaysHistory(t *testing.T) {
	stub := &stubCompleter{reply: `{"action":"ask","params":{},"response":"ok","confidence":0.5}`}
	agent := newTestAgent(stub)

	history := []any{
		map[string]any{"userInput": "add milk", "agentResponse": "Adding milk."},
		map[string]any{"userInput": "add bread", "response": "Adding bread."},
		map[string]any{"userInput": "add eggs", "agentResponse": "Adding eggs."},
		map[string]any{"userInput": "remove milk", "agentResponse": "Removing milk."},
	}
	state := &ConversationState{State: "adding_items", Context: map[string]any{"history": history}}

	agent.Interpret(context.Background(), "user-1", Request{Text: "what's in my cart?", ConversationState: state})

	// system + last 3 exchanges (user+assistant each) + current user message.
	require.Len(t, stub.messages, 8)
	assert.Equal(t, openai.ChatMessageRoleSystem, stub.messages[0].Role)
	assert.Equal(t, "add bread", stub.messages[1].Content)
	assert.Equal(t, "Adding bread.", stub.messages[2].Content)
	assert.Equal(t, "Removing milk.", stub.messages[6].Content)
	assert.Equal(t, "what's in my cart?", stub.messages[7].Content)
}

func TestInterpretHindiPreamble(t *testing.T) {
	stub := &stubCompleter{reply: `{"action":"search_and_add","params":{"query":"milk"},"response":"ठीक है","confidence":0.9}`}
	agent := newTestAgent(stub)

	agent.Interpret(context.Background(), "user-1", Request{Text: "दूध डालो", Language: "hi-IN"})

	last := stub.messages[len(stub.messages)-1]
	assert.Contains(t, last.Content, "The user is speaking Hindi")
	assert.Contains(t, last.Content, "दूध डालो")
}

func TestSystemPromptListsRecipes(t *testing.T) {
	prompt := systemPrompt()
	assert.Contains(t, prompt, "Chicken Biryani")
	assert.Contains(t, prompt, "दाल तड़का")
	assert.Contains(t, prompt, "search_and_add")
}
