package discord

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/require"

	"github.com/osse101/PhoenixBot_Go/internal/event"
	"github.com/osse101/PhoenixBot_Go/internal/guild"
	"github.com/osse101/PhoenixBot_Go/internal/inventory"
	"github.com/osse101/PhoenixBot_Go/internal/regear"
	"github.com/osse101/PhoenixBot_Go/internal/testing/fakes"
)

const (
	testGuild     = "100"
	testChannel   = "200"
	testAudit     = "300"
	testIssuer    = "400"
	testRecipient = "500"
	testRole      = "600"
)

// MockRoundTripper implements http.RoundTripper for intercepting requests
type MockRoundTripper struct {
	RoundTripFunc func(req *http.Request) (*http.Response, error)
}

func (m *MockRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	return m.RoundTripFunc(req)
}

type recordedRequest struct {
	Method string
	Path   string
	Body   []byte
}

// TestContext is a discordgo session whose REST calls are answered locally,
// plus services backed by an in-memory store
type TestContext struct {
	Session      *discordgo.Session
	DiscordMocks *MockRoundTripper
	Store        *fakes.Store
	Services     *Services

	mu       sync.Mutex
	requests []recordedRequest
	next     int

	// Fail maps "METHOD path-suffix" to a status code and Discord error code
	Fail map[string][2]int
}

func SetupTestContext(t *testing.T) *TestContext {
	t.Helper()

	session, err := discordgo.New("Bot test-token")
	require.NoError(t, err)
	session.MaxRestRetries = 0

	tc := &TestContext{Session: session, Store: fakes.NewStore(), Fail: map[string][2]int{}}
	tc.DiscordMocks = &MockRoundTripper{RoundTripFunc: tc.answer}
	session.Client = &http.Client{Transport: tc.DiscordMocks}

	guildSvc := guild.NewService(tc.Store, guild.DefaultCacheConfig())
	auth := regear.NewAuthorizer(guildSvc)
	ledger := regear.NewLedger(tc.Store, auth)
	messenger := NewMessenger(session)

	tc.Services = &Services{
		Wizard:      regear.NewWizard(tc.Store),
		Coordinator: regear.NewCoordinator(ledger, event.NewMemoryBus(), regear.DefaultViews(messenger, guildSvc)...),
		Authorizer:  auth,
		Inventory:   inventory.NewService(tc.Store),
		Guild:       guildSvc,
		Submissions: NewSubmissionGuard(DefaultSubmissionGuardSize, DefaultSubmissionGuardTTL),
	}
	return tc
}

func (tc *TestContext) answer(req *http.Request) (*http.Response, error) {
	var body []byte
	if req.Body != nil {
		body, _ = io.ReadAll(req.Body)
	}
	path := req.URL.Path

	tc.mu.Lock()
	tc.requests = append(tc.requests, recordedRequest{Method: req.Method, Path: path, Body: body})
	tc.next++
	n := tc.next
	tc.mu.Unlock()

	for key, failure := range tc.Fail {
		method, suffix, _ := strings.Cut(key, " ")
		if req.Method == method && strings.HasSuffix(path, suffix) {
			return jsonResponse(failure[0], fmt.Sprintf(`{"code":%d,"message":"mock failure"}`, failure[1])), nil
		}
	}

	switch {
	case req.Method == http.MethodPost && strings.HasSuffix(path, "/users/@me/channels"):
		return jsonResponse(http.StatusOK, `{"id":"dm-channel","type":1}`), nil
	case req.Method == http.MethodPost && strings.HasSuffix(path, "/messages"):
		return jsonResponse(http.StatusOK, fmt.Sprintf(`{"id":"msg-%d"}`, n)), nil
	case strings.HasSuffix(path, "/commands"):
		return jsonResponse(http.StatusOK, "[]"), nil
	case req.Method == http.MethodDelete:
		return &http.Response{StatusCode: http.StatusNoContent, Body: io.NopCloser(bytes.NewReader(nil)), Header: make(http.Header)}, nil
	}
	return jsonResponse(http.StatusOK, "{}"), nil
}

func jsonResponse(status int, body string) *http.Response {
	h := make(http.Header)
	h.Set("Content-Type", "application/json")
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(bytes.NewBufferString(body)),
		Header:     h,
	}
}

// Requests returns the recorded requests matching method whose path contains part
func (tc *TestContext) Requests(method, part string) []recordedRequest {
	tc.mu.Lock()
	defer tc.mu.Unlock()
	var out []recordedRequest
	for _, r := range tc.requests {
		if r.Method == method && strings.Contains(r.Path, part) {
			out = append(out, r)
		}
	}
	return out
}

// Reset forgets recorded requests
func (tc *TestContext) Reset() {
	tc.mu.Lock()
	defer tc.mu.Unlock()
	tc.requests = nil
}

type interactionReply struct {
	Type    discordgo.InteractionResponseType `json:"type"`
	Data    json.RawMessage                   `json:"data"`
	Message *discordgo.Message                `json:"-"`
}

// Replies decodes every interaction callback sent so far
func (tc *TestContext) Replies(t *testing.T) []interactionReply {
	t.Helper()
	var out []interactionReply
	for _, r := range tc.Requests(http.MethodPost, "/callback") {
		var reply interactionReply
		require.NoError(t, json.Unmarshal(r.Body, &reply))
		if len(reply.Data) > 0 {
			reply.Message = &discordgo.Message{}
			require.NoError(t, json.Unmarshal(reply.Data, reply.Message))
		}
		out = append(out, reply)
	}
	return out
}

// LastReply returns the most recent interaction callback
func (tc *TestContext) LastReply(t *testing.T) interactionReply {
	t.Helper()
	replies := tc.Replies(t)
	require.NotEmpty(t, replies)
	return replies[len(replies)-1]
}

// Followups decodes the ephemeral followup messages sent so far
func (tc *TestContext) Followups(t *testing.T) []discordgo.WebhookParams {
	t.Helper()
	var out []discordgo.WebhookParams
	for _, r := range tc.Requests(http.MethodPost, "/webhooks/") {
		var params discordgo.WebhookParams
		require.NoError(t, json.Unmarshal(r.Body, &params))
		out = append(out, params)
	}
	return out
}

func member(userID string, roles []string, perms int64) *discordgo.Member {
	return &discordgo.Member{
		User:        &discordgo.User{ID: userID, Username: "user-" + userID},
		Roles:       roles,
		Permissions: perms,
	}
}

func commandInteraction(name string, m *discordgo.Member, opts ...*discordgo.ApplicationCommandInteractionDataOption) *discordgo.InteractionCreate {
	return &discordgo.InteractionCreate{
		Interaction: &discordgo.Interaction{
			ID:        "interaction-1",
			AppID:     "app-1",
			Token:     "token-1",
			Type:      discordgo.InteractionApplicationCommand,
			GuildID:   testGuild,
			ChannelID: testChannel,
			Member:    m,
			Data: discordgo.ApplicationCommandInteractionData{
				Name:    name,
				Options: opts,
			},
		},
	}
}

func componentInteraction(customID string, values []string, msg *discordgo.Message, m *discordgo.Member) *discordgo.InteractionCreate {
	return &discordgo.InteractionCreate{
		Interaction: &discordgo.Interaction{
			ID:        "interaction-2",
			AppID:     "app-1",
			Token:     "token-2",
			Type:      discordgo.InteractionMessageComponent,
			GuildID:   testGuild,
			ChannelID: testChannel,
			Member:    m,
			Message:   msg,
			Data: discordgo.MessageComponentInteractionData{
				CustomID: customID,
				Values:   values,
			},
		},
	}
}

func stringOpt(name, value string) *discordgo.ApplicationCommandInteractionDataOption {
	return &discordgo.ApplicationCommandInteractionDataOption{
		Name:  name,
		Type:  discordgo.ApplicationCommandOptionString,
		Value: value,
	}
}

func subOpt(name string, opts ...*discordgo.ApplicationCommandInteractionDataOption) *discordgo.ApplicationCommandInteractionDataOption {
	return &discordgo.ApplicationCommandInteractionDataOption{
		Name:    name,
		Type:    discordgo.ApplicationCommandOptionSubCommand,
		Options: opts,
	}
}
