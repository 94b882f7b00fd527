package wizard_test

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/formsync/pkg/actions"
	"github.com/agentstation/formsync/pkg/errors"
	"github.com/agentstation/formsync/pkg/formbuilder"
	"github.com/agentstation/formsync/pkg/records"
	"github.com/agentstation/formsync/pkg/records/memory"
	"github.com/agentstation/formsync/pkg/wizard"
)

const apiURL = "http://fb.test/api/v1/templates/aggregates"

type fakeFetcher struct {
	templates []formbuilder.Template
	err       error
	calls     int
}

func (f *fakeFetcher) FetchTemplates(_ context.Context, _, _ string) ([]formbuilder.Template, error) {
	f.calls++
	return f.templates, f.err
}

// gateFetcher blocks each fetch until the test releases it.
type gateFetcher struct {
	templates []formbuilder.Template
	started   chan struct{}
	release   chan struct{}
}

func newGateFetcher(templates []formbuilder.Template) *gateFetcher {
	return &gateFetcher{
		templates: templates,
		started:   make(chan struct{}),
		release:   make(chan struct{}),
	}
}

func (f *gateFetcher) FetchTemplates(ctx context.Context, _, _ string) ([]formbuilder.Template, error) {
	f.started <- struct{}{}
	select {
	case <-f.release:
		return f.templates, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func sampleTemplates() []formbuilder.Template {
	return []formbuilder.Template{
		{
			ID:     1,
			Title:  formbuilder.String("Feedback"),
			Author: formbuilder.String("alice@example.com"),
			Questions: []formbuilder.Question{
				{Text: "Age", Type: formbuilder.QuestionTypeInteger, AnswerCount: 3, Aggregation: json.RawMessage(`{"average":5,"min":1,"max":9}`)},
			},
		},
		{
			ID: 2,
			Questions: []formbuilder.Question{
				{Text: "Comments", Type: formbuilder.QuestionTypeText, Aggregation: json.RawMessage(`{}`)},
			},
		},
	}
}

func newWizard(store records.Store, fetcher wizard.Fetcher, key string) *wizard.Wizard {
	return wizard.New(store, fetcher,
		wizard.WithID("session-1"),
		wizard.WithAPIURL(apiURL),
		wizard.WithAPIKey(key),
	)
}

func TestFullFlow(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	fetcher := &fakeFetcher{templates: sampleTemplates()}
	w := newWizard(store, fetcher, "FB_valid_key_1234")

	assert.Equal(t, wizard.StateCredentials, w.State())

	d, err := w.TestConnection(ctx)
	require.NoError(t, err)
	assert.Equal(t, actions.TypeWindow, d.Type)
	assert.Equal(t, actions.ModelWizard, d.Model)
	assert.Equal(t, "session-1", d.ResourceID)
	assert.Equal(t, actions.TargetNew, d.Target)

	snap := w.Snapshot()
	assert.Equal(t, wizard.StatePreview, snap.State)
	assert.Equal(t, "Preview Data", snap.StateLabel)
	assert.Equal(t, 2, snap.TemplateCount)
	assert.Contains(t, snap.PreviewData, "\n  {")
	assert.NotContains(t, snap.APIKey, "valid_key")

	d, err = w.Import(ctx)
	require.NoError(t, err)
	assert.Equal(t, actions.TypeNotification, d.Type)
	assert.Equal(t, "Import Complete", d.Title)
	assert.Equal(t, "Successfully imported 2 template(s)", d.Message)
	assert.Equal(t, wizard.StateDone, w.State())
	assert.Equal(t, 2, w.Snapshot().Imported.Created)

	templates, err := store.Templates(ctx)
	require.NoError(t, err)
	require.Len(t, templates, 2)

	byExternal := map[int]records.Template{}
	for _, tpl := range templates {
		byExternal[tpl.ExternalID] = tpl
	}
	assert.Equal(t, "Feedback", byExternal[1].Name)
	assert.Equal(t, "Untitled", byExternal[2].Name)
	assert.Equal(t, "Unknown", byExternal[2].Author)
	assert.Equal(t, apiURL, byExternal[1].APIURL)
	assert.False(t, byExternal[1].LastSync.IsZero())
}

func TestTestConnectionRejectsKeyFormatBeforeFetching(t *testing.T) {
	fetcher := &fakeFetcher{templates: sampleTemplates()}
	w := newWizard(memory.New(), fetcher, "sk_not_formbuilder")

	_, err := w.TestConnection(context.Background())
	require.Error(t, err)
	assert.Equal(t, `Invalid API key format. API key should start with "FB_"`, errors.Classify(err).Message)
	assert.Equal(t, 0, fetcher.calls)
	assert.Equal(t, wizard.StateCredentials, w.State())
}

func TestDefaults(t *testing.T) {
	fetcher := &fakeFetcher{}
	w := wizard.New(memory.New(), fetcher, wizard.WithAPIKey("FB_x"))
	assert.Equal(t, "http://localhost:5175/api/v1/templates/aggregates", w.Snapshot().APIURL)
	assert.Len(t, w.ID(), 36, "session ids are UUIDs")

	other := wizard.New(memory.New(), fetcher, wizard.WithAPIURL(""))
	assert.NotEqual(t, w.ID(), other.ID())
	assert.NotEmpty(t, other.Snapshot().APIURL, "empty url keeps the default")
}

func TestTestConnectionFetchError(t *testing.T) {
	fetcher := &fakeFetcher{err: errors.NewAPIError(apiURL, 429, "slow down")}
	w := newWizard(memory.New(), fetcher, "FB_key")

	_, err := w.TestConnection(context.Background())
	require.Error(t, err)
	assert.Equal(t, errors.MsgRateLimited, errors.Classify(err).Message)
	assert.Equal(t, wizard.StateCredentials, w.State())
	assert.Empty(t, w.Snapshot().PreviewData)
}

func TestImportWithoutPreview(t *testing.T) {
	w := newWizard(memory.New(), &fakeFetcher{}, "FB_key")

	_, err := w.Import(context.Background())
	require.Error(t, err)
	assert.True(t, errors.IsValidationError(err))
	assert.Equal(t, "No data to import. Please test connection first.", errors.Classify(err).Message)
}

func TestWrongStateAfterDone(t *testing.T) {
	ctx := context.Background()
	fetcher := &fakeFetcher{templates: sampleTemplates()}
	w := newWizard(memory.New(), fetcher, "FB_key")

	_, err := w.TestConnection(ctx)
	require.NoError(t, err)
	_, err = w.Import(ctx)
	require.NoError(t, err)

	_, err = w.TestConnection(ctx)
	assert.True(t, errors.IsValidationError(err))
	_, err = w.Import(ctx)
	assert.True(t, errors.IsValidationError(err))
	assert.Equal(t, 1, fetcher.calls)
}

func TestSnapshotDuringConnectionTest(t *testing.T) {
	fetcher := newGateFetcher(sampleTemplates())
	w := newWizard(memory.New(), fetcher, "FB_key")

	done := make(chan error, 1)
	go func() {
		_, err := w.TestConnection(context.Background())
		done <- err
	}()
	<-fetcher.started

	snapshot := make(chan wizard.Snapshot, 1)
	go func() { snapshot <- w.Snapshot() }()
	select {
	case snap := <-snapshot:
		assert.Equal(t, wizard.StateCredentials, snap.State)
	case <-time.After(time.Second):
		t.Fatal("Snapshot blocked while the fetch was in flight")
	}

	fetcher.release <- struct{}{}
	require.NoError(t, <-done)
	assert.Equal(t, wizard.StatePreview, w.State())
}

func TestConnectionTestAfterConcurrentImport(t *testing.T) {
	ctx := context.Background()
	fetcher := newGateFetcher(sampleTemplates())
	w := newWizard(memory.New(), fetcher, "FB_key")

	done := make(chan error, 1)
	go func() {
		_, err := w.TestConnection(ctx)
		done <- err
	}()
	<-fetcher.started
	fetcher.release <- struct{}{}
	require.NoError(t, <-done)

	go func() {
		_, err := w.TestConnection(ctx)
		done <- err
	}()
	<-fetcher.started

	_, err := w.Import(ctx)
	require.NoError(t, err)

	fetcher.release <- struct{}{}
	err = <-done
	assert.True(t, errors.IsValidationError(err))
	assert.Equal(t, wizard.StateDone, w.State())
	assert.Equal(t, 2, w.Snapshot().Imported.Created)
}

func TestRetestRefreshesPreview(t *testing.T) {
	ctx := context.Background()
	fetcher := &fakeFetcher{templates: sampleTemplates()}
	w := newWizard(memory.New(), fetcher, "FB_key")

	_, err := w.TestConnection(ctx)
	require.NoError(t, err)

	fetcher.templates = fetcher.templates[:1]
	_, err = w.TestConnection(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, w.Snapshot().TemplateCount)
}

func TestReimportUpdatesExisting(t *testing.T) {
	ctx := context.Background()
	store := memory.New()

	for range 2 {
		w := newWizard(store, &fakeFetcher{templates: sampleTemplates()}, "FB_key")
		_, err := w.TestConnection(ctx)
		require.NoError(t, err)
		_, err = w.Import(ctx)
		require.NoError(t, err)
	}

	templates, err := store.Templates(ctx)
	require.NoError(t, err)
	assert.Len(t, templates, 2)
	for _, tpl := range templates {
		assert.Equal(t, 1, tpl.QuestionCount())
	}
}

// flakyStore fails to create the template with the given external id.
type flakyStore struct {
	records.Store
	failOn int
}

func (s *flakyStore) Begin(ctx context.Context) (records.Tx, error) {
	tx, err := s.Store.Begin(ctx)
	if err != nil {
		return nil, err
	}
	return &flakyTx{Tx: tx, failOn: s.failOn}, nil
}

type flakyTx struct {
	records.Tx
	failOn int
}

func (tx *flakyTx) CreateTemplate(ctx context.Context, t *records.Template) error {
	if t.ExternalID == tx.failOn {
		return stderrors.New("disk I/O error")
	}
	return tx.Tx.CreateTemplate(ctx, t)
}

func TestImportAbortsWholeBatch(t *testing.T) {
	ctx := context.Background()
	base := memory.New()
	store := &flakyStore{Store: base, failOn: 2}
	w := newWizard(store, &fakeFetcher{templates: sampleTemplates()}, "FB_key")

	_, err := w.TestConnection(ctx)
	require.NoError(t, err)

	_, err = w.Import(ctx)
	require.Error(t, err)

	var syncErr *errors.SyncError
	require.True(t, errors.As(err, &syncErr))
	assert.Equal(t, 2, syncErr.TemplateID)
	assert.Equal(t, "Import error: disk I/O error", errors.Classify(err).Message)
	assert.Equal(t, wizard.StatePreview, w.State())

	templates, err := base.Templates(ctx)
	require.NoError(t, err)
	assert.Empty(t, templates, "template 1 must not be committed")
}

func TestViewDirectives(t *testing.T) {
	d := wizard.ViewTemplates()
	assert.Equal(t, actions.ModelTemplate, d.Model)
	assert.Equal(t, actions.TargetCurrent, d.Target)

	w := newWizard(memory.New(), &fakeFetcher{}, "FB_key")
	assert.Equal(t, d, w.ViewTemplates())

	q := wizard.ViewQuestions(7)
	assert.Equal(t, actions.ModelQuestion, q.Model)
	assert.Equal(t, int64(7), q.Domain["template_id"])
}
