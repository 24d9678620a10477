package http

import (
	"net/http"

	"github.com/acidderek/acid-concepts-automation-sub002/domain/dto"
	"github.com/acidderek/acid-concepts-automation-sub002/usecase"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

type IOAuthHandler interface {
	Dispatch(c *gin.Context)
	GetAuthURL(c *gin.Context)
	Callback(c *gin.Context)
}

type oauthHandler struct {
	authUsecase usecase.IAuthUsecase
	validator   usecase.IKeyValidator
}

func NewOAuthHandler(authUsecase usecase.IAuthUsecase, validator usecase.IKeyValidator) IOAuthHandler {
	return &oauthHandler{authUsecase: authUsecase, validator: validator}
}

// Dispatch handles POST /api/oauth. The body carries an action discriminator;
// it is re-bound into the matching variant before anything else runs.
func (h *oauthHandler) Dispatch(c *gin.Context) {
	var probe dto.ActionProbe
	if err := c.ShouldBindBodyWith(&probe, binding.JSON); err != nil {
		respondMalformed(c, err)
		return
	}

	switch probe.Action {
	case dto.ActionStartAuth:
		var req dto.OAuthStartRequest
		if err := c.ShouldBindBodyWith(&req, binding.JSON); err != nil {
			respondMalformed(c, err)
			return
		}
		out, err := h.authUsecase.StartAuth(c.Request.Context(), req.OwnerID, req.RedirectURI)
		if err != nil {
			respondError(c, err)
			return
		}
		respondOK(c, gin.H{"auth_url": out.AuthURL, "state": out.State})

	case dto.ActionHandleCallback:
		var req dto.OAuthCallbackRequest
		if err := c.ShouldBindBodyWith(&req, binding.JSON); err != nil {
			respondMalformed(c, err)
			return
		}
		identity, err := h.authUsecase.HandleCallback(c.Request.Context(), req.OwnerID, req.Code, req.State, req.RedirectURI)
		if err != nil {
			respondError(c, err)
			return
		}
		respondOK(c, gin.H{"identity": identity.Username})

	case dto.ActionRefreshToken:
		var req dto.OAuthRefreshRequest
		if err := c.ShouldBindBodyWith(&req, binding.JSON); err != nil {
			respondMalformed(c, err)
			return
		}
		if err := h.authUsecase.RefreshToken(c.Request.Context(), req.OwnerID); err != nil {
			respondError(c, err)
			return
		}
		respondOK(c, gin.H{"refreshed": true})

	case dto.ActionGetStatus:
		var req dto.OAuthStatusRequest
		if err := c.ShouldBindBodyWith(&req, binding.JSON); err != nil {
			respondMalformed(c, err)
			return
		}
		status, err := h.authUsecase.GetStatus(c.Request.Context(), req.OwnerID, req.Probe)
		if err != nil {
			respondError(c, err)
			return
		}
		respondOK(c, gin.H{"status": status})

	case dto.ActionSaveCredentials:
		var req dto.SaveCredentialsRequest
		if err := c.ShouldBindBodyWith(&req, binding.JSON); err != nil {
			respondMalformed(c, err)
			return
		}
		validation, err := h.authUsecase.SaveCredentials(c.Request.Context(), req.OwnerID, req.ClientID, req.ClientSecret)
		if err != nil {
			respondError(c, err)
			return
		}
		respondOK(c, gin.H{"saved": true, "validation": validation})

	case dto.ActionValidateKey:
		var req dto.ValidateKeyRequest
		if err := c.ShouldBindBodyWith(&req, binding.JSON); err != nil {
			respondMalformed(c, err)
			return
		}
		result := h.validator.Validate(c.Request.Context(), req.Provider, req.Key, req.Live)
		respondOK(c, gin.H{"validation": result})

	case dto.ActionDisconnect:
		var req dto.DisconnectRequest
		if err := c.ShouldBindBodyWith(&req, binding.JSON); err != nil {
			respondMalformed(c, err)
			return
		}
		if err := h.authUsecase.Disconnect(c.Request.Context(), req.OwnerID); err != nil {
			respondError(c, err)
			return
		}
		respondOK(c, gin.H{"disconnected": true})

	default:
		respondUnknownAction(c, probe.Action)
	}
}

// GetAuthURL handles GET /auth/reddit (browser entry point).
func (h *oauthHandler) GetAuthURL(c *gin.Context) {
	ownerID := c.Query("owner_id")
	if ownerID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "missing owner_id"})
		return
	}
	out, err := h.authUsecase.StartAuth(c.Request.Context(), ownerID, c.Query("redirect_uri"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, gin.H{"auth_url": out.AuthURL, "state": out.State})
}

// Callback handles GET /auth/reddit/callback, the provider redirect target.
func (h *oauthHandler) Callback(c *gin.Context) {
	if errParam := c.Query("error"); errParam != "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "provider error: " + errParam})
		return
	}
	ownerID := c.Query("owner_id")
	if ownerID == "" {
		ownerID = c.GetString("user_id")
	}
	code := c.Query("code")
	state := c.Query("state")
	if ownerID == "" || code == "" || state == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "missing owner_id, code or state"})
		return
	}
	identity, err := h.authUsecase.HandleCallback(c.Request.Context(), ownerID, code, state, c.Query("redirect_uri"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, gin.H{"connected": true, "identity": identity.Username})
}
