package backend

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/sony/gobreaker"
	"golang.org/x/time/rate"
	"google.golang.org/genai"

	"github.com/ganklab/gankspeak/pkg/slang"
	"github.com/ganklab/gankspeak/pkg/slang/lang"
)

// Default model and voice selection.
const (
	DefaultTextModel  = "gemini-2.5-flash"
	DefaultTTSModel   = "gemini-2.5-flash-preview-tts"
	DefaultImageModel = "imagen-3.0-generate-002"
	DefaultVoice      = "Kore"

	// Free-tier friendly client-side throttle.
	DefaultRequestsPerMinute = 30
)

// Config configures the Gemini backend client.
type Config struct {
	APIKey     string
	TextModel  string
	TTSModel   string
	ImageModel string
	Voice      string

	// RequestsPerMinute bounds outbound call rate. Zero means the default.
	RequestsPerMinute int
}

func (c *Config) defaults() {
	if c.TextModel == "" {
		c.TextModel = DefaultTextModel
	}
	if c.TTSModel == "" {
		c.TTSModel = DefaultTTSModel
	}
	if c.ImageModel == "" {
		c.ImageModel = DefaultImageModel
	}
	if c.Voice == "" {
		c.Voice = DefaultVoice
	}
	if c.RequestsPerMinute <= 0 {
		c.RequestsPerMinute = DefaultRequestsPerMinute
	}
}

// Gemini is the production slang.Backend over the Gemini API.
type Gemini struct {
	client  *genai.Client
	cfg     Config
	retry   *Policy
	limiter *rate.Limiter
	breaker *gobreaker.CircuitBreaker
}

var _ slang.Backend = (*Gemini)(nil)

// New creates a Gemini backend client.
func New(ctx context.Context, cfg Config) (*Gemini, error) {
	cfg.defaults()
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("missing API key")
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	return &Gemini{
		client:  client,
		cfg:     cfg,
		retry:   NewPolicy(),
		limiter: rate.NewLimiter(rate.Every(time.Minute/time.Duration(cfg.RequestsPerMinute)), cfg.RequestsPerMinute),
		breaker: gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:    "gemini",
			Timeout: 30 * time.Second,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= 5
			},
		}),
	}, nil
}

// generate runs one retried, rate-limited, breaker-guarded content call.
func (g *Gemini) generate(ctx context.Context, op, model string, contents []*genai.Content, cfg *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	var resp *genai.GenerateContentResponse
	err := g.retry.Do(ctx, op, func() error {
		if err := g.limiter.Wait(ctx); err != nil {
			return err
		}
		r, err := g.breaker.Execute(func() (any, error) {
			return g.client.Models.GenerateContent(ctx, model, contents, cfg)
		})
		if err != nil {
			return err
		}
		resp = r.(*genai.GenerateContentResponse)
		return nil
	})
	return resp, err
}

func responseText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}
	var sb strings.Builder
	for _, p := range resp.Candidates[0].Content.Parts {
		if p.Text != "" {
			sb.WriteString(p.Text)
		}
	}
	return sb.String()
}

// permissiveSafety disables the categories that routinely block gaming
// trash talk.
func permissiveSafety() []*genai.SafetySetting {
	return []*genai.SafetySetting{
		{Category: genai.HarmCategoryHateSpeech, Threshold: genai.HarmBlockThresholdOff},
		{Category: genai.HarmCategoryHarassment, Threshold: genai.HarmBlockThresholdOff},
		{Category: genai.HarmCategoryDangerousContent, Threshold: genai.HarmBlockThresholdOff},
	}
}

func translationSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"slang_text":    {Type: genai.TypeString, Description: "The slang translation."},
			"visual_prompt": {Type: genai.TypeString, Description: "An abstract visual description of the phrase's mood."},
			"tags":          {Type: genai.TypeArray, Items: &genai.Schema{Type: genai.TypeString}, Description: "Up to three short mood tags."},
		},
		Required: []string{"slang_text"},
	}
}

func enrichmentSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"visual_prompt": {Type: genai.TypeString},
			"tags":          {Type: genai.TypeArray, Items: &genai.Schema{Type: genai.TypeString}},
		},
		Required: []string{"visual_prompt", "tags"},
	}
}

func translateInstruction(src, tgt string, streaming bool) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Translate the following into %s gaming slang.\n", lang.Label(tgt))
	if src == lang.AutoDetect {
		sb.WriteString("Detect the input language yourself.\n")
	} else {
		fmt.Fprintf(&sb, "The input is %s.\n", lang.Label(src))
	}
	sb.WriteString(lang.Hint(tgt))
	sb.WriteString("\nKeep the meaning, shift the register. Do not translate literally.\n")
	if streaming {
		sb.WriteString("Reply with the translated text only, no commentary, no quotes.")
	}
	return sb.String()
}

func inputContents(in slang.Input, instruction string) []*genai.Content {
	parts := []*genai.Part{genai.NewPartFromText(instruction)}
	if in.IsAudio() {
		parts = append(parts,
			genai.NewPartFromText("The utterance to translate is in the attached audio."),
			genai.NewPartFromBytes(in.Audio, in.AudioMIME),
		)
	} else {
		parts = append(parts, genai.NewPartFromText("Utterance: "+in.Text))
	}
	return []*genai.Content{{Role: "user", Parts: parts}}
}

// Translate produces a complete structured translation in one call.
func (g *Gemini) Translate(ctx context.Context, in slang.Input, sourceLang, targetLang string) (*slang.Translation, error) {
	contents := inputContents(in, translateInstruction(sourceLang, targetLang, false))
	cfg := &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   translationSchema(),
		SafetySettings:   permissiveSafety(),
	}
	resp, err := g.generate(ctx, "translate", g.cfg.TextModel, contents, cfg)
	if err != nil {
		return nil, err
	}
	var out struct {
		SlangText    string   `json:"slang_text"`
		VisualPrompt string   `json:"visual_prompt"`
		Tags         []string `json:"tags"`
	}
	if err := decodeJSON(responseText(resp), &out); err != nil {
		return nil, fmt.Errorf("translate: %w", err)
	}
	if out.SlangText == "" {
		return nil, fmt.Errorf("translate: %w: empty slang_text", slang.ErrInvalidFormat)
	}
	return &slang.Translation{
		SlangText:    out.SlangText,
		VisualPrompt: out.VisualPrompt,
		Tags:         out.Tags,
	}, nil
}

// TranslateStream streams the translated text as plain fragments.
//
// Transport failures before the first fragment are retried with the same
// backoff as non-streamed calls; once text has been yielded a failure is
// surfaced in-sequence instead, because the consumer has already shown
// partial output. A quota rejection after text ends the stream cleanly
// with the slang.StreamQuotaNotice fragment.
func (g *Gemini) TranslateStream(ctx context.Context, in slang.Input, sourceLang, targetLang string) slang.Stream {
	contents := inputContents(in, translateInstruction(sourceLang, targetLang, true))
	cfg := &genai.GenerateContentConfig{SafetySettings: permissiveSafety()}

	return func(yield func(string, error) bool) {
		delay := g.retry.BaseDelay
		yielded := false
		for attempt := 0; ; attempt++ {
			if err := g.limiter.Wait(ctx); err != nil {
				yield("", err)
				return
			}
			var streamErr error
			for chunk, err := range g.client.Models.GenerateContentStream(ctx, g.cfg.TextModel, contents, cfg) {
				if err != nil {
					streamErr = err
					break
				}
				frag := responseText(chunk)
				if frag == "" {
					continue
				}
				yielded = true
				if !yield(frag, nil) {
					return
				}
			}
			if streamErr == nil {
				return
			}
			if IsQuotaError(streamErr) {
				if yielded {
					yield(slang.StreamQuotaNotice, nil)
				} else {
					yield("", fmt.Errorf("translate stream: %w: %s", slang.ErrQuotaExceeded, streamErr))
				}
				return
			}
			if yielded || attempt >= g.retry.MaxRetries {
				yield("", fmt.Errorf("translate stream: %w", streamErr))
				return
			}
			if attempt > 0 {
				delay *= transientBackoffFactor
			}
			log.Debug("stream failed before first fragment, retrying", "attempt", attempt+1, "delay", delay, "err", streamErr)
			if err := g.retry.sleep(ctx, delay); err != nil {
				yield("", err)
				return
			}
		}
	}
}

// Enrich derives the visual prompt and mood tags for a finished pair.
func (g *Gemini) Enrich(ctx context.Context, original, translated, targetLang string) (*slang.Enrichment, error) {
	prompt := fmt.Sprintf(
		"For the phrase %q (a %s slang rendering of %q), produce an abstract visual description of its mood and up to three short mood tags.",
		translated, lang.Label(targetLang), original,
	)
	contents := []*genai.Content{{Role: "user", Parts: []*genai.Part{genai.NewPartFromText(prompt)}}}
	cfg := &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   enrichmentSchema(),
	}
	resp, err := g.generate(ctx, "enrich", g.cfg.TextModel, contents, cfg)
	if err != nil {
		return nil, err
	}
	var out struct {
		VisualPrompt string   `json:"visual_prompt"`
		Tags         []string `json:"tags"`
	}
	if err := decodeJSON(responseText(resp), &out); err != nil {
		return nil, fmt.Errorf("enrich: %w", err)
	}
	return &slang.Enrichment{VisualPrompt: out.VisualPrompt, Tags: out.Tags}, nil
}

// Synthesize renders text as speech and returns base64 PCM.
func (g *Gemini) Synthesize(ctx context.Context, text string) (string, error) {
	contents := []*genai.Content{{Role: "user", Parts: []*genai.Part{genai.NewPartFromText(text)}}}
	cfg := &genai.GenerateContentConfig{
		ResponseModalities: []string{"AUDIO"},
		SpeechConfig: &genai.SpeechConfig{
			VoiceConfig: &genai.VoiceConfig{
				PrebuiltVoiceConfig: &genai.PrebuiltVoiceConfig{VoiceName: g.cfg.Voice},
			},
		},
	}
	resp, err := g.generate(ctx, "synthesize", g.cfg.TTSModel, contents, cfg)
	if err != nil {
		return "", err
	}
	if len(resp.Candidates) > 0 && resp.Candidates[0].Content != nil {
		for _, p := range resp.Candidates[0].Content.Parts {
			if p.InlineData != nil && len(p.InlineData.Data) > 0 {
				return base64.StdEncoding.EncodeToString(p.InlineData.Data), nil
			}
		}
	}
	return "", fmt.Errorf("synthesize: %w: no audio part in response", slang.ErrInvalidFormat)
}

// Illustrate renders the visual prompt as an image. Any failure degrades
// to an empty result; image art is decoration, never worth an error state.
func (g *Gemini) Illustrate(ctx context.Context, prompt string) slang.BestEffort[string] {
	if prompt == "" {
		return slang.Fallback[string]("")
	}
	if err := g.limiter.Wait(ctx); err != nil {
		return slang.Fallback[string]("")
	}
	resp, err := g.client.Models.GenerateImages(ctx, g.cfg.ImageModel, prompt, &genai.GenerateImagesConfig{
		NumberOfImages: 1,
	})
	if err != nil {
		log.Debug("image generation failed", "err", err)
		return slang.Fallback[string]("")
	}
	if len(resp.GeneratedImages) == 0 || resp.GeneratedImages[0].Image == nil {
		return slang.Fallback[string]("")
	}
	return slang.Got(base64.StdEncoding.EncodeToString(resp.GeneratedImages[0].Image.ImageBytes))
}

// ReverseTranslate renders arbitrary text into the target language with
// safety filters relaxed so gaming vocabulary is not blocked.
func (g *Gemini) ReverseTranslate(ctx context.Context, text, targetLang string) (string, error) {
	prompt := fmt.Sprintf(
		"Translate into natural %s. Reply with the translation only, no commentary.\n\n%s",
		lang.Label(targetLang), text,
	)
	contents := []*genai.Content{{Role: "user", Parts: []*genai.Part{genai.NewPartFromText(prompt)}}}
	cfg := &genai.GenerateContentConfig{SafetySettings: permissiveSafety()}
	resp, err := g.generate(ctx, "reverse translate", g.cfg.TextModel, contents, cfg)
	if err != nil {
		return "", err
	}
	out := strings.TrimSpace(responseText(resp))
	if out == "" {
		return "", fmt.Errorf("reverse translate: %w: empty response", slang.ErrInvalidFormat)
	}
	return out, nil
}

// ScorePronunciation grades a recorded attempt against the expected phrase.
func (g *Gemini) ScorePronunciation(ctx context.Context, recording []byte, mimeType, expected string) (*slang.PronunciationScore, error) {
	prompt := fmt.Sprintf(
		"The attached audio is an attempt to say %q. Grade the pronunciation from 0 to 100 and give one short, encouraging sentence of feedback.",
		expected,
	)
	contents := []*genai.Content{{Role: "user", Parts: []*genai.Part{
		genai.NewPartFromText(prompt),
		genai.NewPartFromBytes(recording, mimeType),
	}}}
	cfg := &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema: &genai.Schema{
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"score":    {Type: genai.TypeInteger},
				"feedback": {Type: genai.TypeString},
			},
			Required: []string{"score", "feedback"},
		},
	}
	resp, err := g.generate(ctx, "score pronunciation", g.cfg.TextModel, contents, cfg)
	if err != nil {
		return nil, err
	}
	var out struct {
		Score    int    `json:"score"`
		Feedback string `json:"feedback"`
	}
	if err := decodeJSON(responseText(resp), &out); err != nil {
		return nil, fmt.Errorf("score pronunciation: %w", err)
	}
	if out.Score < 0 {
		out.Score = 0
	} else if out.Score > 100 {
		out.Score = 100
	}
	return &slang.PronunciationScore{Score: out.Score, Feedback: out.Feedback}, nil
}
