// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package mcpserver registers the research tools, resources and prompt on a
// Model Context Protocol server.
package mcpserver

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rs/zerolog"

	"github.com/pdiddy/research-server/internal/observability"
	"github.com/pdiddy/research-server/internal/prompts"
	"github.com/pdiddy/research-server/internal/research"
)

// Name is the implementation name announced to clients.
const Name = "research-server"

const (
	topicsURI         = "papers://folders"
	topicURITemplate  = "papers://{topic}"
	topicURIPrefix    = "papers://"
	markdownMIMEType  = "text/markdown"
	searchPromptName  = "generate_search_prompt"
	searchPapersTool  = "search_papers"
	extractInfoTool   = "extract_info"
	serverInstruction = "Search arXiv for papers by topic, inspect individual papers, " +
		"and browse the topics already searched through the papers:// resources."
)

// Service is the subset of research.Service the MCP surface needs.
type Service interface {
	SearchPapers(ctx context.Context, topic string, maxResults int) (string, error)
	ExtractInfo(ctx context.Context, paperID string) (string, error)
	ListTopics() (string, error)
	GetTopic(topic string) (string, error)
}

// SearchPapersArgs are the arguments of the search_papers tool.
type SearchPapersArgs struct {
	Topic      string `json:"topic" jsonschema:"the topic to search for" validate:"required"`
	MaxResults int    `json:"max_results,omitempty" jsonschema:"maximum number of results to retrieve (default: 5)" validate:"gte=0"`
}

// ExtractInfoArgs are the arguments of the extract_info tool.
type ExtractInfoArgs struct {
	PaperID string `json:"paper_id" jsonschema:"the arXiv identifier of the paper to look for" validate:"required"`
}

type handlers struct {
	svc      Service
	metrics  *observability.Metrics
	log      zerolog.Logger
	validate *validator.Validate
}

// New builds an MCP server exposing svc. metrics may be nil.
func New(svc Service, version string, metrics *observability.Metrics, log zerolog.Logger) *mcp.Server {
	h := &handlers{svc: svc, metrics: metrics, log: log, validate: newValidator()}

	server := mcp.NewServer(
		&mcp.Implementation{Name: Name, Version: version},
		&mcp.ServerOptions{Instructions: serverInstruction},
	)

	mcp.AddTool(server, &mcp.Tool{
		Name: searchPapersTool,
		Description: "Search for papers on arXiv based on a topic and store their information. " +
			"Returns a list of the papers found.",
	}, h.searchPapers)

	mcp.AddTool(server, &mcp.Tool{
		Name:        extractInfoTool,
		Description: "Get detailed information about a specific paper from arXiv.",
	}, h.extractInfo)

	server.AddResource(&mcp.Resource{
		URI:         topicsURI,
		Name:        "folders",
		Description: "List all topics with stored papers.",
		MIMEType:    markdownMIMEType,
	}, h.readTopics)

	server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: topicURITemplate,
		Name:        "topic_papers",
		Description: "Detailed information about the stored papers on a topic.",
		MIMEType:    markdownMIMEType,
	}, h.readTopic)

	server.AddPrompt(&mcp.Prompt{
		Name:        searchPromptName,
		Description: "Generate a prompt to find and discuss academic papers on a topic.",
		Arguments: []*mcp.PromptArgument{
			{Name: "topic", Description: "the research topic", Required: true},
			{Name: "num_papers", Description: "number of papers to search for (default: 5)"},
		},
	}, h.searchPrompt)

	return server
}

// newValidator reports field names by their json tag so messages match the
// argument names clients send.
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

func (h *handlers) checkArgs(args any) error {
	err := h.validate.Struct(args)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		switch fe.Tag() {
		case "required":
			msgs = append(msgs, fe.Field()+" is required")
		case "gte":
			msgs = append(msgs, fmt.Sprintf("%s must be at least %s", fe.Field(), fe.Param()))
		default:
			msgs = append(msgs, fmt.Sprintf("%s failed %q", fe.Field(), fe.Tag()))
		}
	}
	return fmt.Errorf("invalid arguments: %s", strings.Join(msgs, "; "))
}

func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{Content: []mcp.Content{&mcp.TextContent{Text: text}}}
}

func (h *handlers) searchPapers(ctx context.Context, _ *mcp.CallToolRequest, args SearchPapersArgs) (*mcp.CallToolResult, any, error) {
	err := h.checkArgs(args)
	var out string
	if err == nil {
		out, err = h.svc.SearchPapers(ctx, args.Topic, args.MaxResults)
	}
	h.metrics.RecordToolCall(searchPapersTool, err)
	if err != nil {
		h.log.Error().Err(err).Str("tool", searchPapersTool).Str("topic", args.Topic).Msg("tool failed")
		return textResult(research.SearchFailed(err)), nil, nil
	}
	return textResult(out), nil, nil
}

func (h *handlers) extractInfo(ctx context.Context, _ *mcp.CallToolRequest, args ExtractInfoArgs) (*mcp.CallToolResult, any, error) {
	err := h.checkArgs(args)
	var out string
	if err == nil {
		out, err = h.svc.ExtractInfo(ctx, args.PaperID)
	}
	h.metrics.RecordToolCall(extractInfoTool, err)
	if err != nil {
		h.log.Error().Err(err).Str("tool", extractInfoTool).Str("paper_id", args.PaperID).Msg("tool failed")
		return textResult(research.ExtractFailed(err)), nil, nil
	}
	return textResult(out), nil, nil
}

func markdownResult(uri, text string) *mcp.ReadResourceResult {
	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{URI: uri, MIMEType: markdownMIMEType, Text: text}},
	}
}

func (h *handlers) readTopics(_ context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	out, err := h.svc.ListTopics()
	if err != nil {
		return nil, fmt.Errorf("listing topics: %w", err)
	}
	return markdownResult(req.Params.URI, out), nil
}

func (h *handlers) readTopic(_ context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	topic, err := TopicFromURI(req.Params.URI)
	if err != nil {
		return nil, err
	}
	out, err := h.svc.GetTopic(topic)
	if err != nil {
		return nil, fmt.Errorf("reading topic %q: %w", topic, err)
	}
	return markdownResult(req.Params.URI, out), nil
}

// TopicFromURI extracts the topic from a papers://{topic} URI, undoing
// percent-encoding.
func TopicFromURI(uri string) (string, error) {
	raw, ok := strings.CutPrefix(uri, topicURIPrefix)
	if !ok || raw == "" {
		return "", fmt.Errorf("unsupported resource URI %q", uri)
	}
	topic, err := url.PathUnescape(raw)
	if err != nil {
		return "", fmt.Errorf("decoding resource URI %q: %w", uri, err)
	}
	return topic, nil
}

func (h *handlers) searchPrompt(_ context.Context, req *mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	topic := strings.TrimSpace(req.Params.Arguments["topic"])
	if topic == "" {
		return nil, fmt.Errorf("prompt %s: topic is required", searchPromptName)
	}
	numPapers := prompts.DefaultNumPapers
	if raw := strings.TrimSpace(req.Params.Arguments["num_papers"]); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			numPapers = n
		}
	}
	return &mcp.GetPromptResult{
		Description: fmt.Sprintf("Research prompt for %d papers on %s", numPapers, topic),
		Messages: []*mcp.PromptMessage{{
			Role:    "user",
			Content: &mcp.TextContent{Text: prompts.SearchPrompt(topic, numPapers)},
		}},
	}, nil
}
