package public

import (
	"errors"

	"github.com/shopfront/internal/contact"
	"github.com/shopfront/internal/http/response"
	"github.com/shopfront/internal/i18n"
	"github.com/shopfront/internal/service"

	"github.com/gin-gonic/gin"
)

// ContactRequest 联系表单请求
type ContactRequest struct {
	FullName string `json:"full_name"`
	Subject  string `json:"subject"`
	Email    string `json:"email"`
	Body     string `json:"body"`
}

// SubmitContact 提交联系表单
func (h *Handler) SubmitContact(c *gin.Context) {
	var req ContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}
	locale := i18n.ResolveLocale(c)
	result, err := h.ContactService.Submit(c.Request.Context(), contact.Form{
		FullName: req.FullName,
		Subject:  req.Subject,
		Email:    req.Email,
		Body:     req.Body,
	})
	if errors.Is(err, service.ErrContactInvalid) && result != nil {
		response.ErrorWithData(c, response.CodeBadRequest, i18n.T(locale, "error.contact_invalid"), gin.H{
			"state":  result.State,
			"errors": translateFieldErrors(locale, result.Errors),
			"form":   result.Form,
		})
		return
	}
	if err != nil {
		respondError(c, response.CodeInternal, "error.contact_submit_failed", err)
		return
	}
	response.SuccessWithMsg(c, i18n.T(locale, "contact.submitted"), result)
}

func translateFieldErrors(locale string, errs contact.FieldErrors) map[string]string {
	out := make(map[string]string, len(errs))
	for field, key := range errs {
		out[field] = i18n.T(locale, key)
	}
	return out
}
