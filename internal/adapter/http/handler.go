package http

import (
	"errors"
	"log"
	"strconv"

	"careerprep/internal/catalog"
	"careerprep/internal/domain"
	"careerprep/internal/model"
	"careerprep/internal/render"
	"careerprep/internal/shared"
	"careerprep/internal/usecase"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// catalogPath is where the flow restarts when navigation context is lost.
const catalogPath = "/departments"

type Handler struct {
	auth     *usecase.AuthService
	tips     *usecase.TipService
	builder  *usecase.BuilderService
	exporter *usecase.Exporter
}

func NewHandler(auth *usecase.AuthService, tips *usecase.TipService, builder *usecase.BuilderService, exporter *usecase.Exporter) *Handler {
	return &Handler{auth: auth, tips: tips, builder: builder, exporter: exporter}
}

func (h *Handler) Register(app *fiber.App) {
	app.Post("/auth/signup", h.SignUp)
	app.Post("/auth/signin", h.SignIn)
	app.Post("/auth/signout", h.SignOut)
	app.Get("/auth/session", h.Session)

	app.Get("/departments", h.ListDepartments)
	app.Get("/departments/:id", h.GetDepartment)
	app.Get("/careers/:id/tips", h.requireSession, h.ListTips)
	app.Get("/templates", h.ListTemplates)

	drafts := app.Group("/drafts", h.requireSession)
	drafts.Post("/", h.OpenDraft)
	drafts.Get("/:id", h.GetDraft)
	drafts.Delete("/:id", h.DiscardDraft)
	drafts.Patch("/:id/fields", h.SetDraftField)
	drafts.Post("/:id/lists/:field", h.AppendListEntry)
	drafts.Patch("/:id/lists/:field/:index", h.UpdateListEntry)
	drafts.Delete("/:id/lists/:field/:index", h.RemoveListEntry)
	drafts.Post("/:id/photo", h.AttachPhoto)
	drafts.Post("/:id/submit", h.SubmitDraft)

	resumes := app.Group("/resumes", h.requireSession)
	resumes.Get("/", h.ListResumes)
	resumes.Get("/:id/preview", h.PreviewResume)
	resumes.Get("/:id/export", h.ExportResume)
}

// requireSession resolves the bearer token into a session. Requests
// without one go back to the landing flow with a 401.
func (h *Handler) requireSession(c *fiber.Ctx) error {
	token := c.Get(fiber.HeaderAuthorization)
	const prefix = "Bearer "
	if len(token) > len(prefix) && token[:len(prefix)] == prefix {
		token = token[len(prefix):]
	}
	sess, err := h.auth.CurrentSession(c.Context(), token)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "not signed in"})
	}
	c.Locals("session", sess)
	return c.Next()
}

func (h *Handler) session(c *fiber.Ctx) *domain.Session {
	return c.Locals("session").(*domain.Session)
}

// fail maps classified errors onto status codes and user-facing messages.
func (h *Handler) fail(c *fiber.Ctx, err error) error {
	var verr *model.ValidationError
	switch {
	case errors.As(err, &verr):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"error":   verr.Error(),
			"missing": verr.Missing,
		})
	case errors.Is(err, shared.ErrInvalidInput),
		errors.Is(err, model.ErrIndexOutOfRange),
		errors.Is(err, model.ErrUnknownField),
		errors.Is(err, model.ErrPhotoTooLarge),
		errors.Is(err, model.ErrPhotoBadType):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, shared.ErrInvalidCredentials), errors.Is(err, shared.ErrInvalidToken):
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, shared.ErrUnconfirmedEmail):
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "please verify your email address before logging in"})
	case errors.Is(err, shared.ErrAlreadyRegistered):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "this email is already registered, please login instead"})
	case errors.Is(err, usecase.ErrDraftNotFound), errors.Is(err, shared.ErrNotFound):
		// lost navigation context is a redirect, not an error page
		return c.Redirect(catalogPath, fiber.StatusSeeOther)
	case errors.Is(err, shared.ErrSaveFailed):
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": err.Error()})
	}
	log.Printf("handler: internal error: %v", err)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal error"})
}

type signUpReq struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	DisplayName string `json:"display_name"`
}

func (h *Handler) SignUp(c *fiber.Ctx) error {
	var req signUpReq
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid payload"})
	}
	sess, err := h.auth.SignUp(c.Context(), req.Email, req.Password, req.DisplayName)
	if err != nil {
		return h.fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(sess)
}

type signInReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *Handler) SignIn(c *fiber.Ctx) error {
	var req signInReq
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid payload"})
	}
	sess, err := h.auth.SignIn(c.Context(), req.Email, req.Password)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(sess)
}

func (h *Handler) SignOut(c *fiber.Ctx) error {
	if err := h.auth.SignOut(c.Context()); err != nil {
		return h.fail(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *Handler) Session(c *fiber.Ctx) error {
	token := c.Get(fiber.HeaderAuthorization)
	const prefix = "Bearer "
	if len(token) > len(prefix) && token[:len(prefix)] == prefix {
		token = token[len(prefix):]
	}
	sess, err := h.auth.CurrentSession(c.Context(), token)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(sess)
}

func (h *Handler) ListDepartments(c *fiber.Ctx) error {
	return c.JSON(catalog.Departments())
}

func (h *Handler) GetDepartment(c *fiber.Ctx) error {
	dept, ok := catalog.DepartmentByID(c.Params("id"))
	if !ok {
		return c.Redirect(catalogPath, fiber.StatusSeeOther)
	}
	return c.JSON(dept)
}

func (h *Handler) ListTips(c *fiber.Ctx) error {
	careerID := c.Params("id")
	career, course, dept, ok := catalog.CareerByID(careerID)
	if !ok {
		return c.Redirect(catalogPath, fiber.StatusSeeOther)
	}
	if link, ok := career.TipsOverride(); ok {
		return c.Redirect(link, fiber.StatusSeeOther)
	}
	list, err := h.tips.ListTips(c.Context(), careerID)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(fiber.Map{
		"career":     career,
		"course":     course,
		"department": dept,
		"tips":       list.Tips,
		"generic":    list.Generic,
	})
}

func (h *Handler) ListTemplates(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"templates": render.TemplateIDs()})
}

type openDraftReq struct {
	CareerID string `json:"career_id,omitempty"`
}

func (h *Handler) OpenDraft(c *fiber.Ctx) error {
	var req openDraftReq
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid payload"})
		}
	}

	var careerID *string
	if req.CareerID != "" {
		if _, _, _, ok := catalog.CareerByID(req.CareerID); !ok {
			return c.Redirect(catalogPath, fiber.StatusSeeOther)
		}
		careerID = &req.CareerID
	}

	sess := h.session(c)
	id, draft := h.builder.Open(sess.UserID, sess.Email, careerID)
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"draft_id": id, "draft": draft})
}

func (h *Handler) GetDraft(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Redirect(catalogPath, fiber.StatusSeeOther)
	}
	draft, err := h.builder.Get(h.session(c).UserID, id)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(draft)
}

func (h *Handler) DiscardDraft(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Redirect(catalogPath, fiber.StatusSeeOther)
	}
	h.builder.Discard(h.session(c).UserID, id)
	return c.SendStatus(fiber.StatusNoContent)
}

type setFieldReq struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

func (h *Handler) SetDraftField(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Redirect(catalogPath, fiber.StatusSeeOther)
	}
	var req setFieldReq
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid payload"})
	}
	err = h.builder.Edit(h.session(c).UserID, id, func(d *model.ResumeDraft) error {
		return d.SetField(req.Name, req.Value)
	})
	if err != nil {
		return h.fail(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *Handler) AppendListEntry(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Redirect(catalogPath, fiber.StatusSeeOther)
	}
	field := model.ListField(c.Params("field"))
	err = h.builder.Edit(h.session(c).UserID, id, func(d *model.ResumeDraft) error {
		return d.Append(field)
	})
	if err != nil {
		return h.fail(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

type updateEntryReq struct {
	Subfield string `json:"subfield,omitempty"`
	Value    string `json:"value"`
}

func (h *Handler) UpdateListEntry(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Redirect(catalogPath, fiber.StatusSeeOther)
	}
	index, err := strconv.Atoi(c.Params("index"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid index"})
	}
	var req updateEntryReq
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid payload"})
	}
	field := model.ListField(c.Params("field"))
	err = h.builder.Edit(h.session(c).UserID, id, func(d *model.ResumeDraft) error {
		return d.UpdateAt(field, index, req.Subfield, req.Value)
	})
	if err != nil {
		return h.fail(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *Handler) RemoveListEntry(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Redirect(catalogPath, fiber.StatusSeeOther)
	}
	index, err := strconv.Atoi(c.Params("index"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid index"})
	}
	field := model.ListField(c.Params("field"))
	err = h.builder.Edit(h.session(c).UserID, id, func(d *model.ResumeDraft) error {
		return d.RemoveAt(field, index)
	})
	if err != nil {
		return h.fail(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *Handler) AttachPhoto(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Redirect(catalogPath, fiber.StatusSeeOther)
	}
	contentType := c.Get(fiber.HeaderContentType)
	body := c.Body()
	err = h.builder.Edit(h.session(c).UserID, id, func(d *model.ResumeDraft) error {
		return d.AttachPhoto(body, contentType)
	})
	if err != nil {
		return h.fail(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *Handler) SubmitDraft(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Redirect(catalogPath, fiber.StatusSeeOther)
	}
	stored, err := h.builder.Submit(c.Context(), h.session(c).UserID, id)
	if err != nil {
		return h.fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(stored)
}

func (h *Handler) ListResumes(c *fiber.Ctx) error {
	resumes, err := h.builder.Resumes(c.Context(), h.session(c).UserID)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(fiber.Map{"resumes": resumes})
}

func (h *Handler) resumeAndTemplate(c *fiber.Ctx) (*domain.StoredResume, render.TemplateID, error) {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return nil, "", shared.ErrNotFound
	}
	tpl := c.Query("template", string(render.ClassicProfessional))
	tplID, err := render.ParseTemplateID(tpl)
	if err != nil {
		return nil, "", err
	}
	stored, err := h.builder.Resume(c.Context(), h.session(c).UserID, id)
	if err != nil {
		return nil, "", err
	}
	return stored, tplID, nil
}

// PreviewResume returns the isolated print view: the chosen template's
// document and nothing else.
func (h *Handler) PreviewResume(c *fiber.Ctx) error {
	stored, tplID, err := h.resumeAndTemplate(c)
	if err != nil {
		return h.fail(c, err)
	}
	html, err := h.exporter.Preview(stored, tplID)
	if err != nil {
		return h.fail(c, err)
	}
	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return c.SendString(html)
}

func (h *Handler) ExportResume(c *fiber.Ctx) error {
	stored, tplID, err := h.resumeAndTemplate(c)
	if err != nil {
		return h.fail(c, err)
	}
	pdf, err := h.exporter.ExportPDF(c.Context(), stored, tplID)
	if err != nil {
		return h.fail(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="resume.pdf"`)
	return c.Send(pdf)
}
