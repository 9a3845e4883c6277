package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"careerprep/internal/domain"
	"careerprep/internal/render"
	"careerprep/internal/shared"
	"careerprep/internal/usecase"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memUsers struct {
	byEmail map[string]*domain.User
}

func newMemUsers() *memUsers {
	return &memUsers{byEmail: map[string]*domain.User{}}
}

func (r *memUsers) Create(ctx context.Context, u *domain.User) error {
	if _, ok := r.byEmail[u.Email]; ok {
		return shared.ErrAlreadyRegistered
	}
	cp := *u
	r.byEmail[u.Email] = &cp
	return nil
}

func (r *memUsers) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	u, ok := r.byEmail[email]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return u, nil
}

func (r *memUsers) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	for _, u := range r.byEmail {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, shared.ErrNotFound
}

type memTips struct {
	byCareer map[string][]domain.Tip
}

func (r *memTips) ListByCareer(ctx context.Context, careerID string) ([]domain.Tip, error) {
	return r.byCareer[careerID], nil
}

type memResumes struct {
	rows []domain.StoredResume
}

func (r *memResumes) Save(ctx context.Context, res *domain.StoredResume) (*domain.StoredResume, error) {
	stored := *res
	stored.ID = uuid.New()
	r.rows = append(r.rows, stored)
	return &stored, nil
}

func (r *memResumes) GetByID(ctx context.Context, id uuid.UUID) (*domain.StoredResume, error) {
	for i := range r.rows {
		if r.rows[i].ID == id {
			return &r.rows[i], nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *memResumes) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.StoredResume, error) {
	var out []domain.StoredResume
	for _, row := range r.rows {
		if row.UserID == userID {
			out = append(out, row)
		}
	}
	return out, nil
}

type stubRenderer struct{}

func (stubRenderer) RenderHTMLToPDF(ctx context.Context, html string) ([]byte, error) {
	return []byte("%PDF-1.4 stub"), nil
}

func newTestApp() (*fiber.App, *memResumes) {
	users := newMemUsers()
	tips := &memTips{byCareer: map[string][]domain.Tip{
		"web-dev": {
			{CareerID: "web-dev", Category: "Preparation", Text: "Build a portfolio site.", OrderIndex: 0},
			{CareerID: "web-dev", Category: "Communication", Text: "Walk through a recent project.", OrderIndex: 1},
		},
	}}
	resumes := &memResumes{}

	authSvc := usecase.NewAuthService(users, []byte("test-secret"), time.Hour, false)
	tipSvc := usecase.NewTipService(tips)
	builder := usecase.NewBuilderService(resumes)
	exporter := usecase.NewExporter(render.NewEngine(), stubRenderer{})

	app := fiber.New()
	NewHandler(authSvc, tipSvc, builder, exporter).Register(app)
	return app, resumes
}

func doJSON(t *testing.T, app *fiber.App, method, path, token string, body interface{}) *http.Response {
	t.Helper()
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		rd = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, rd)
	if body != nil {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func decode(t *testing.T, resp *http.Response, out interface{}) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}

func signUp(t *testing.T, app *fiber.App, email string) string {
	t.Helper()
	resp := doJSON(t, app, fiber.MethodPost, "/auth/signup", "", fiber.Map{
		"email":        email,
		"password":     "secret123",
		"display_name": "Ada Lovelace",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	var sess domain.Session
	decode(t, resp, &sess)
	require.NotEmpty(t, sess.Token)
	return sess.Token
}

func TestAuthFlow(t *testing.T) {
	app, _ := newTestApp()

	token := signUp(t, app, "ada@example.com")

	// duplicate registration is a conflict with a login hint
	resp := doJSON(t, app, fiber.MethodPost, "/auth/signup", "", fiber.Map{
		"email":        "ada@example.com",
		"password":     "secret123",
		"display_name": "Ada Lovelace",
	})
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
	var body map[string]string
	decode(t, resp, &body)
	assert.Contains(t, body["error"], "please login instead")

	// wrong password
	resp = doJSON(t, app, fiber.MethodPost, "/auth/signin", "", fiber.Map{
		"email":    "ada@example.com",
		"password": "wrong-pass",
	})
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	// correct password
	resp = doJSON(t, app, fiber.MethodPost, "/auth/signin", "", fiber.Map{
		"email":    "ada@example.com",
		"password": "secret123",
	})
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	// session lookup with the signup token
	resp = doJSON(t, app, fiber.MethodGet, "/auth/session", token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var sess domain.Session
	decode(t, resp, &sess)
	assert.Equal(t, "ada@example.com", sess.Email)
	assert.Equal(t, "Ada Lovelace", sess.DisplayName)

	// sign-out always succeeds
	resp = doJSON(t, app, fiber.MethodPost, "/auth/signout", token, nil)
	assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)

	// stateless tokens stay valid until expiry
	resp = doJSON(t, app, fiber.MethodGet, "/auth/session", token, nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestCatalogEndpoints(t *testing.T) {
	app, _ := newTestApp()

	resp := doJSON(t, app, fiber.MethodGet, "/departments", "", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var depts []map[string]interface{}
	decode(t, resp, &depts)
	assert.Len(t, depts, 6)

	resp = doJSON(t, app, fiber.MethodGet, "/departments/ccs", "", nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	resp.Body.Close()

	// unknown department restarts the flow at the catalog
	resp = doJSON(t, app, fiber.MethodGet, "/departments/nope", "", nil)
	assert.Equal(t, fiber.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, catalogPath, resp.Header.Get("Location"))
}

func TestTipsEndpoint(t *testing.T) {
	app, _ := newTestApp()
	token := signUp(t, app, "ada@example.com")

	// tips require a session
	resp := doJSON(t, app, fiber.MethodGet, "/careers/web-dev/tips", "", nil)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	resp = doJSON(t, app, fiber.MethodGet, "/careers/web-dev/tips", token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var out struct {
		Tips    []domain.Tip `json:"tips"`
		Generic bool         `json:"generic"`
	}
	decode(t, resp, &out)
	assert.False(t, out.Generic)
	require.Len(t, out.Tips, 2)
	assert.Equal(t, "Build a portfolio site.", out.Tips[0].Text)

	// careers without stored tips fall back to the generic set
	resp = doJSON(t, app, fiber.MethodGet, "/careers/data-scientist/tips", token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	decode(t, resp, &out)
	assert.True(t, out.Generic)
	assert.NotEmpty(t, out.Tips)

	// unknown career restarts the flow
	resp = doJSON(t, app, fiber.MethodGet, "/careers/nope/tips", token, nil)
	assert.Equal(t, fiber.StatusSeeOther, resp.StatusCode)
}

func openDraft(t *testing.T, app *fiber.App, token, careerID string) string {
	t.Helper()
	var body interface{}
	if careerID != "" {
		body = fiber.Map{"career_id": careerID}
	}
	resp := doJSON(t, app, fiber.MethodPost, "/drafts/", token, body)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	var out struct {
		DraftID string `json:"draft_id"`
	}
	decode(t, resp, &out)
	require.NotEmpty(t, out.DraftID)
	return out.DraftID
}

func TestBuilderFlow(t *testing.T) {
	app, resumes := newTestApp()
	token := signUp(t, app, "ada@example.com")

	// opening with an unknown career restarts the flow
	resp := doJSON(t, app, fiber.MethodPost, "/drafts/", token, fiber.Map{"career_id": "nope"})
	assert.Equal(t, fiber.StatusSeeOther, resp.StatusCode)

	draftID := openDraft(t, app, token, "web-dev")

	// the draft opens pre-filled with the session email
	resp = doJSON(t, app, fiber.MethodGet, "/drafts/"+draftID, token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var draft map[string]interface{}
	decode(t, resp, &draft)
	assert.Equal(t, "ada@example.com", draft["email"])

	// submitting the empty draft is a validation error and saves nothing
	resp = doJSON(t, app, fiber.MethodPost, "/drafts/"+draftID+"/submit", token, nil)
	assert.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)
	var verr struct {
		Missing []string `json:"missing"`
	}
	decode(t, resp, &verr)
	assert.Equal(t, []string{"first_name", "last_name"}, verr.Missing)
	assert.Empty(t, resumes.rows)

	// fill the required fields and one list
	for name, value := range map[string]string{"first_name": "Ada", "last_name": "Lovelace"} {
		resp = doJSON(t, app, fiber.MethodPatch, "/drafts/"+draftID+"/fields", token, fiber.Map{
			"name": name, "value": value,
		})
		require.Equal(t, fiber.StatusNoContent, resp.StatusCode)
	}
	resp = doJSON(t, app, fiber.MethodPost, "/drafts/"+draftID+"/lists/skills", token, nil)
	require.Equal(t, fiber.StatusNoContent, resp.StatusCode)
	resp = doJSON(t, app, fiber.MethodPatch, "/drafts/"+draftID+"/lists/skills/0", token, fiber.Map{"value": "Mathematics"})
	require.Equal(t, fiber.StatusNoContent, resp.StatusCode)

	// out-of-range index is rejected
	resp = doJSON(t, app, fiber.MethodPatch, "/drafts/"+draftID+"/lists/skills/5", token, fiber.Map{"value": "x"})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	// unknown list field is rejected
	resp = doJSON(t, app, fiber.MethodPost, "/drafts/"+draftID+"/lists/hobbies", token, nil)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	resp = doJSON(t, app, fiber.MethodPost, "/drafts/"+draftID+"/submit", token, nil)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	var stored domain.StoredResume
	decode(t, resp, &stored)
	assert.Equal(t, "Ada Lovelace", stored.FullName)
	require.NotNil(t, stored.CareerID)
	assert.Equal(t, "web-dev", *stored.CareerID)
	assert.Equal(t, []string{"Mathematics"}, stored.Skills)
	require.Len(t, resumes.rows, 1)

	// the draft is gone after submission
	resp = doJSON(t, app, fiber.MethodGet, "/drafts/"+draftID, token, nil)
	assert.Equal(t, fiber.StatusSeeOther, resp.StatusCode)

	// the stored copy is listed for the owner
	resp = doJSON(t, app, fiber.MethodGet, "/resumes/", token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var listing struct {
		Resumes []domain.StoredResume `json:"resumes"`
	}
	decode(t, resp, &listing)
	assert.Len(t, listing.Resumes, 1)
}

func TestAttachPhoto(t *testing.T) {
	app, _ := newTestApp()
	token := signUp(t, app, "ada@example.com")
	draftID := openDraft(t, app, token, "")

	req := httptest.NewRequest(fiber.MethodPost, "/drafts/"+draftID+"/photo", strings.NewReader("fake-jpeg-bytes"))
	req.Header.Set(fiber.HeaderContentType, "image/jpeg")
	req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)

	resp = doJSON(t, app, fiber.MethodGet, "/drafts/"+draftID, token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var draft map[string]interface{}
	decode(t, resp, &draft)
	photo, _ := draft["photo_url"].(string)
	assert.True(t, strings.HasPrefix(photo, "data:image/jpeg;base64,"))

	// unsupported content types are rejected
	req = httptest.NewRequest(fiber.MethodPost, "/drafts/"+draftID+"/photo", strings.NewReader("<svg/>"))
	req.Header.Set(fiber.HeaderContentType, "image/svg+xml")
	req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestPreviewAndExport(t *testing.T) {
	app, _ := newTestApp()
	token := signUp(t, app, "ada@example.com")
	draftID := openDraft(t, app, token, "")

	for name, value := range map[string]string{"first_name": "Ada", "last_name": "Lovelace"} {
		resp := doJSON(t, app, fiber.MethodPatch, "/drafts/"+draftID+"/fields", token, fiber.Map{
			"name": name, "value": value,
		})
		require.Equal(t, fiber.StatusNoContent, resp.StatusCode)
	}
	resp := doJSON(t, app, fiber.MethodPost, "/drafts/"+draftID+"/submit", token, nil)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	var stored domain.StoredResume
	decode(t, resp, &stored)

	for _, tpl := range render.TemplateIDs() {
		url := fmt.Sprintf("/resumes/%s/preview?template=%s", stored.ID, tpl)
		resp = doJSON(t, app, fiber.MethodGet, url, token, nil)
		require.Equal(t, fiber.StatusOK, resp.StatusCode)
		body, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		require.NoError(t, err)
		assert.Contains(t, string(body), "Ada Lovelace")
		assert.Contains(t, resp.Header.Get(fiber.HeaderContentType), "text/html")
	}

	// unknown template choice is a bad request
	resp = doJSON(t, app, fiber.MethodGet, "/resumes/"+stored.ID.String()+"/preview?template=fancy", token, nil)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	resp = doJSON(t, app, fiber.MethodGet, "/resumes/"+stored.ID.String()+"/export", token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get(fiber.HeaderContentType))
	body, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.4 stub", string(body))

	// another user cannot reach the stored resume
	other := signUp(t, app, "grace@example.com")
	resp = doJSON(t, app, fiber.MethodGet, "/resumes/"+stored.ID.String()+"/preview", other, nil)
	assert.Equal(t, fiber.StatusSeeOther, resp.StatusCode)
}
