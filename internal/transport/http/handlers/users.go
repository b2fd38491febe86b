package http_handlers

import (
	"io"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"

	"github.com/phonebook-app/accounts-service/internal/application/account"
	"github.com/phonebook-app/accounts-service/internal/domain"
	"github.com/phonebook-app/accounts-service/internal/infrastructure/avatar"
	"github.com/phonebook-app/accounts-service/internal/logger"
	"github.com/phonebook-app/accounts-service/internal/transport/http/dto"
	"github.com/phonebook-app/accounts-service/internal/transport/http/middleware"
	"github.com/phonebook-app/accounts-service/internal/transport/http/response"
)

// maxAvatarUploadBytes bounds the multipart avatar upload.
const maxAvatarUploadBytes = 8 << 20

type UserHandler struct {
	svc    *account.Service
	tmpDir string // staging area for raw uploads
}

func NewUserHandler(svc *account.Service, tmpDir string) *UserHandler {
	if tmpDir == "" {
		tmpDir = os.TempDir()
	}
	return &UserHandler{svc: svc, tmpDir: tmpDir}
}

func (h *UserHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req dto.SignupRequest
	if err := response.DecodeJSON(r, &req); err != nil {
		response.WriteError(w, r, err)
		return
	}

	res, err := h.svc.Signup(r.Context(), req.Email, req.Password, req.Subscription)
	if err != nil {
		response.WriteError(w, r, err)
		return
	}

	l := logger.WithCtx(r.Context())
	l.Info().
		Str("email", req.Email).
		Msg("user_registered")

	response.Created(w, dto.SignupData{
		User: dto.SignupUserView{
			Subscription: res.Subscription,
			AvatarURL:    res.AvatarURL,
			Message:      res.Message,
		},
	})
}

func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if err := response.DecodeJSON(r, &req); err != nil {
		response.WriteError(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		response.WriteError(w, r, err)
		return
	}

	res, err := h.svc.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		response.WriteError(w, r, err)
		return
	}

	l := logger.WithCtx(r.Context())
	l.Info().
		Str("email", res.Email).
		Msg("user_logged_in")

	response.OK(w, dto.LoginData{
		Token: res.Token,
		User: dto.LoginUserView{
			Email:        res.Email,
			Subscription: res.Subscription,
		},
	})
}

func (h *UserHandler) Logout(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		response.WriteError(w, r, domain.ErrUnauthorized())
		return
	}

	if err := h.svc.Logout(r.Context(), userID); err != nil {
		response.WriteError(w, r, err)
		return
	}
	response.NoContent(w)
}

func (h *UserHandler) Current(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		response.WriteError(w, r, domain.ErrUnauthorized())
		return
	}

	res, err := h.svc.Current(r.Context(), userID)
	if err != nil {
		response.WriteError(w, r, err)
		return
	}

	response.OK(w, dto.CurrentData{
		Email:        res.Email,
		Subscription: res.Subscription,
	})
}

func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	views, err := h.svc.ListUsers(r.Context())
	if err != nil {
		response.WriteError(w, r, err)
		return
	}

	out := make([]dto.UserView, 0, len(views))
	for _, v := range views {
		out = append(out, dto.UserView{
			ID:           v.ID,
			Email:        v.Email,
			Subscription: v.Subscription,
			AvatarURL:    v.AvatarURL,
			Verified:     v.Verified,
		})
	}
	response.OK(w, dto.UsersData{Users: out})
}

func (h *UserHandler) Verify(w http.ResponseWriter, r *http.Request) {
	token := chi.URLParam(r, "token")

	if err := h.svc.Verify(r.Context(), token); err != nil {
		response.WriteError(w, r, err)
		return
	}

	response.OK(w, dto.VerifyData{Message: "Verification successful"})
}

func (h *UserHandler) Resend(w http.ResponseWriter, r *http.Request) {
	var req dto.ResendRequest
	if err := response.DecodeJSON(r, &req); err != nil {
		response.WriteError(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		response.WriteError(w, r, err)
		return
	}

	if err := h.svc.ResendVerification(r.Context(), req.Email); err != nil {
		response.WriteError(w, r, err)
		return
	}

	response.OK(w, dto.VerifyData{Message: "Verification email sent"})
}

// UpdateAvatar stages the multipart upload into a temp file, rejects
// non-image content up front, and hands the file to the account service.
func (h *UserHandler) UpdateAvatar(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		response.WriteError(w, r, domain.ErrUnauthorized())
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxAvatarUploadBytes)
	file, _, err := r.FormFile("avatar")
	if err != nil {
		response.WriteError(w, r, domain.ErrInvalidField("avatar", "multipart file field is required"))
		return
	}
	defer file.Close()

	tmpPath, err := h.stageUpload(file)
	if err != nil {
		response.WriteError(w, r, err)
		return
	}
	// The processor removes the staged file once it runs; this covers the
	// paths where it never does.
	defer func() { _ = os.Remove(tmpPath) }()

	avatarURL, err := h.svc.UpdateAvatar(r.Context(), userID, tmpPath)
	if err != nil {
		response.WriteError(w, r, err)
		return
	}

	l := logger.WithCtx(r.Context())
	l.Info().
		Str("user_id", userID).
		Str("avatar_url", avatarURL).
		Msg("avatar_updated")

	response.OK(w, dto.AvatarData{AvatarURL: avatarURL})
}

// stageUpload sniffs the magic bytes before writing anything to disk, then
// copies the upload into the staging directory. The caller (via the avatar
// processor) owns removal of the returned file.
func (h *UserHandler) stageUpload(file io.Reader) (string, error) {
	head := make([]byte, 512)
	n, err := io.ReadFull(file, head)
	if err != nil && err != io.ErrUnexpectedEOF {
		return "", domain.ErrUnsupportedImage()
	}
	head = head[:n]

	if _, err := avatar.DetectType(head); err != nil {
		return "", domain.ErrUnsupportedImage()
	}

	tmp, err := os.CreateTemp(h.tmpDir, "avatar-upload-*")
	if err != nil {
		return "", domain.ErrInternal(err)
	}

	if _, err := tmp.Write(head); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return "", domain.ErrInternal(err)
	}
	if _, err := io.Copy(tmp, file); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return "", domain.ErrInternal(err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return "", domain.ErrInternal(err)
	}
	return tmp.Name(), nil
}
