package slang

import (
	"context"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"github.com/ganklab/gankspeak/pkg/slang/cache"
)

// enrichTimeout bounds the best-effort metadata task. Past this the
// record ships without a visual prompt rather than stalling the assets
// stage.
const enrichTimeout = 10 * time.Second

// Callbacks connect the orchestrator to the presentation layer. All are
// optional. OnRecord fires with a fresh copy on every visible change of
// the in-flight record; OnState fires on every state transition;
// OnWarning reports non-blocking degradation (assets incomplete).
type Callbacks struct {
	OnRecord  func(rec TranslationRecord)
	OnState   func(st StateType)
	OnWarning func(msg string)
}

// Orchestrator drives the translation pipeline: cache lookup, streaming
// translation, parallel asset generation, commit, and stale-request
// suppression.
//
// Concurrency model: each Translate call runs on the caller's goroutine
// and owns a generation number. Any continuation (fragment, asset result,
// backfill) re-checks its generation against the current one under the
// mutex before touching visible state, so a superseded request's late
// results are discarded rather than cancelled.
type Orchestrator struct {
	backend Backend
	caches  *cache.Set
	history *History

	mu      sync.Mutex
	sm      *StateMachine
	visible TranslationRecord
	gen     atomic.Int64

	speechFlight singleflight.Group

	callbacks Callbacks
	now       func() time.Time
}

// NewOrchestrator creates an orchestrator around a backend.
func NewOrchestrator(backend Backend, caches *cache.Set, history *History, cb Callbacks) *Orchestrator {
	if caches == nil {
		caches = cache.NewSet()
	}
	if history == nil {
		history = NewHistory()
	}
	return &Orchestrator{
		backend:   backend,
		caches:    caches,
		history:   history,
		sm:        NewStateMachine(),
		callbacks: cb,
		now:       time.Now,
	}
}

// History returns the committed-record list.
func (o *Orchestrator) History() *History { return o.history }

// State returns the current session state.
func (o *Orchestrator) State() StateType {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.sm.Current()
}

// isActive reports whether gen is still the live request.
func (o *Orchestrator) isActive(gen int64) bool {
	return o.gen.Load() == gen
}

// setState transitions the state machine if gen is still live.
func (o *Orchestrator) setState(gen int64, st StateType) {
	o.mu.Lock()
	if !o.isActive(gen) || !o.sm.Transition(st) {
		o.mu.Unlock()
		return
	}
	o.mu.Unlock()
	if o.callbacks.OnState != nil {
		o.callbacks.OnState(st)
	}
}

// publish replaces the visible record and notifies, if gen is still live.
func (o *Orchestrator) publish(gen int64, rec TranslationRecord) {
	o.mu.Lock()
	if !o.isActive(gen) {
		o.mu.Unlock()
		return
	}
	o.visible = rec.clone()
	o.mu.Unlock()
	if o.callbacks.OnRecord != nil {
		o.callbacks.OnRecord(rec.clone())
	}
}

// Visible returns a copy of the in-flight record.
func (o *Orchestrator) Visible() TranslationRecord {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.visible.clone()
}

// StartRecording moves the session into voice capture.
func (o *Orchestrator) StartRecording() bool {
	o.mu.Lock()
	ok := o.sm.Transition(StateRecording)
	o.mu.Unlock()
	if ok && o.callbacks.OnState != nil {
		o.callbacks.OnState(StateRecording)
	}
	return ok
}

// Translate runs the full pipeline for one utterance. It blocks until the
// record is committed or the request fails or is superseded; run it on its
// own goroutine. A newer Translate call supersedes this one at every
// suspension point.
func (o *Orchestrator) Translate(ctx context.Context, in Input, sourceLang, targetLang string) error {
	if !in.IsAudio() && strings.TrimSpace(in.Text) == "" {
		return ErrEmptyInput
	}

	gen := o.gen.Add(1)
	now := o.now()

	rec := TranslationRecord{
		ID:         newRecordID(now),
		CreatedAt:  now,
		SourceLang: sourceLang,
		TargetLang: targetLang,
	}
	if in.IsAudio() {
		rec.OriginalText = VoicePlaceholder
	} else {
		rec.OriginalText = strings.TrimSpace(in.Text)
	}

	o.setState(gen, StateTranslating)
	o.publish(gen, rec)

	// Audio input is never cache-keyed.
	var key string
	cacheable := !in.IsAudio()
	if cacheable {
		key = cache.Key(in.Text, sourceLang, targetLang)
		if entry, ok := o.caches.Translations.Get(key); ok && entry.SlangText != "" {
			return o.fromCache(ctx, gen, rec, key, entry)
		}
	}

	// Fresh generation: stream the translation text.
	text, truncated, err := o.consumeStream(ctx, gen, &rec, in, sourceLang, targetLang)
	if err != nil {
		if !o.isActive(gen) {
			return ErrSuperseded
		}
		o.setState(gen, StateError)
		return err
	}
	if !o.isActive(gen) {
		return ErrSuperseded
	}
	rec.TranslatedText = text

	o.setState(gen, StateLoading)

	// A quota-truncated result is shown but never cached or voiced.
	if truncated {
		o.warn("translation was cut short, assets skipped")
		o.commit(gen, rec, "", false)
		return nil
	}

	o.loadAssets(ctx, gen, &rec)
	if !o.isActive(gen) {
		return ErrSuperseded
	}

	o.commit(gen, rec, key, cacheable)
	o.backfillImage(ctx, gen, rec)
	return nil
}

// fromCache finishes a request from a cached entry. A full hit (text,
// metadata and audio all present) completes with zero backend calls; a
// partial hit reuses whatever is cached and regenerates only the missing
// assets, so an entry whose first pass degraded enrichment is not
// tag-less forever.
func (o *Orchestrator) fromCache(ctx context.Context, gen int64, rec TranslationRecord, key string, entry cache.Entry) error {
	rec.TranslatedText = entry.SlangText
	rec.VisualPrompt = entry.VisualPrompt
	rec.Tags = clampTags(entry.Tags)
	rec.AudioData = entry.AudioData
	o.publish(gen, rec)

	if rec.AudioData == "" || rec.VisualPrompt == "" {
		o.setState(gen, StateLoading)
		o.loadAssets(ctx, gen, &rec)
	}

	if !o.isActive(gen) {
		return ErrSuperseded
	}
	// No image regeneration on cache hits; a full hit stays free.
	o.commit(gen, rec, key, true)
	return nil
}

// consumeStream drains the fragment stream into the visible record,
// publishing after every fragment. On a stream failure with no text it
// falls back to one non-streamed call; with partial text it degrades to
// what arrived. The truncated result reports a quota cut after text.
func (o *Orchestrator) consumeStream(ctx context.Context, gen int64, rec *TranslationRecord, in Input, sourceLang, targetLang string) (text string, truncated bool, err error) {
	var sb strings.Builder
	var streamErr error

	for frag, ferr := range o.backend.TranslateStream(ctx, in, sourceLang, targetLang) {
		if ferr != nil {
			streamErr = ferr
			break
		}
		if frag == StreamQuotaNotice {
			truncated = true
		}
		sb.WriteString(frag)
		rec.TranslatedText = sb.String()
		o.publish(gen, *rec)
		if !o.isActive(gen) {
			return "", false, ErrSuperseded
		}
	}

	if streamErr == nil {
		if sb.Len() == 0 {
			streamErr = ErrTranslationFailed
		} else {
			return sb.String(), truncated, nil
		}
	}

	if sb.Len() > 0 {
		// Partial text is usable; the failure downgrades to a warning.
		o.warn("stream interrupted, result may be incomplete")
		return sb.String(), truncated, nil
	}

	log.Debug("stream produced no text, falling back to non-streamed call", "err", streamErr)
	t, terr := o.backend.Translate(ctx, in, sourceLang, targetLang)
	if terr != nil {
		return "", false, terr
	}
	rec.TranslatedText = t.SlangText
	rec.VisualPrompt = t.VisualPrompt
	rec.Tags = clampTags(t.Tags)
	o.publish(gen, *rec)
	return t.SlangText, false, nil
}

// loadAssets runs the metadata and audio tasks in parallel. Each task
// merges its own result into the working record and re-publishes the
// moment it settles, so tags can arrive before audio or the other way
// around. Tasks for assets the record already carries are skipped. Both
// are degradable: failures downgrade to a warning, never an error state.
func (o *Orchestrator) loadAssets(ctx context.Context, gen int64, rec *TranslationRecord) {
	var mu sync.Mutex
	apply := func(fn func(r *TranslationRecord)) {
		mu.Lock()
		fn(rec)
		snap := rec.clone()
		mu.Unlock()
		o.publish(gen, snap)
	}

	g, gctx := errgroup.WithContext(ctx)

	if rec.VisualPrompt == "" {
		g.Go(func() error {
			e := o.enrichWithin(gctx, rec.OriginalText, rec.TranslatedText, rec.TargetLang)
			if e.Degraded || e.Value.VisualPrompt == "" {
				return nil
			}
			apply(func(r *TranslationRecord) {
				r.VisualPrompt = e.Value.VisualPrompt
				r.Tags = clampTags(e.Value.Tags)
			})
			return nil
		})
	}

	if rec.AudioData == "" {
		g.Go(func() error {
			data, err := o.Speech(gctx, rec.TranslatedText)
			if err != nil {
				o.warn("speech synthesis failed: " + err.Error())
				return nil
			}
			apply(func(r *TranslationRecord) { r.AudioData = data })
			return nil
		})
	}

	// Tasks report degradation instead of failing the group.
	_ = g.Wait()
}

// enrichWithin races enrichment against its timeout and degrades to an
// empty default on any failure, keeping the assets stage responsive.
func (o *Orchestrator) enrichWithin(ctx context.Context, original, translated, targetLang string) BestEffort[Enrichment] {
	ctx, cancel := context.WithTimeout(ctx, enrichTimeout)
	defer cancel()
	e, err := o.backend.Enrich(ctx, original, translated, targetLang)
	if err != nil || e == nil {
		log.Debug("enrichment degraded", "err", err)
		return Fallback(Enrichment{})
	}
	return Got(*e)
}

// Speech returns base64 speech audio for text, serving repeats from the
// audio cache. Concurrent calls for identical text collapse into one
// backend request; the in-flight slot is dropped unconditionally once it
// settles so a failure does not wedge the key.
func (o *Orchestrator) Speech(ctx context.Context, text string) (string, error) {
	key := cache.AudioKey(text)
	if data, ok := o.caches.Audio.Get(key); ok {
		return data, nil
	}
	v, err, _ := o.speechFlight.Do(key, func() (any, error) {
		defer o.speechFlight.Forget(key)
		data, err := o.backend.Synthesize(ctx, text)
		if err != nil {
			return "", err
		}
		o.caches.Audio.Set(key, data)
		return data, nil
	})
	if err != nil {
		return "", err
	}
	return v.(string), nil
}

// commit freezes the record into history and, when cacheable, the
// translation cache, then settles the state machine.
func (o *Orchestrator) commit(gen int64, rec TranslationRecord, key string, cacheable bool) {
	if !o.isActive(gen) {
		return
	}
	o.history.Add(rec)
	if cacheable && key != "" {
		o.caches.Translations.Set(key, cache.Entry{
			SlangText:    rec.TranslatedText,
			VisualPrompt: rec.VisualPrompt,
			Tags:         rec.Tags,
			AudioData:    rec.AudioData,
		})
	}
	o.publish(gen, rec)
	o.setState(gen, StateSuccess)
}

// backfillImage renders the committed record's visual prompt and patches
// the image into history after the fact. Purely decorative: degraded
// results are dropped without a warning.
func (o *Orchestrator) backfillImage(ctx context.Context, gen int64, rec TranslationRecord) {
	if rec.VisualPrompt == "" || !o.isActive(gen) {
		return
	}
	img := o.backend.Illustrate(ctx, rec.VisualPrompt)
	if img.Degraded || img.Value == "" || !o.isActive(gen) {
		return
	}
	if err := o.history.Backfill(rec.ID, func(r *TranslationRecord) {
		r.ImageData = img.Value
	}); err != nil {
		return
	}
	rec.ImageData = img.Value
	o.publish(gen, rec)
}

// Swap inverts a finished record and pushes the inversion into history.
// Pure and synchronous: no backend call is made and the stale audio is
// dropped.
func (o *Orchestrator) Swap(rec TranslationRecord) TranslationRecord {
	swapped := rec.Swapped(o.now())
	o.history.Add(swapped)
	return swapped
}

// ReverseTranslate renders text into the target language, serving repeats
// from the reverse cache.
func (o *Orchestrator) ReverseTranslate(ctx context.Context, text, targetLang string) (string, error) {
	key := cache.ReverseKey(text, targetLang)
	if v, ok := o.caches.Reverse.Get(key); ok {
		return v, nil
	}
	out, err := o.backend.ReverseTranslate(ctx, text, targetLang)
	if err != nil {
		return "", err
	}
	o.caches.Reverse.Set(key, out)
	return out, nil
}

// Pronounce grades a recorded attempt at the expected phrase.
func (o *Orchestrator) Pronounce(ctx context.Context, recording []byte, mimeType, expected string) (*PronunciationScore, error) {
	return o.backend.ScorePronunciation(ctx, recording, mimeType, expected)
}

// ClearHistory empties the committed-record list. The caches deliberately
// survive so re-translating a cleared phrase stays free.
func (o *Orchestrator) ClearHistory() {
	o.history.Clear()
}

func (o *Orchestrator) warn(msg string) {
	log.Warn(msg)
	if o.callbacks.OnWarning != nil {
		o.callbacks.OnWarning(msg)
	}
}
