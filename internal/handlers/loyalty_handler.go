package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/httpresp"
	ucLoyalty "github.com/BruksfildServices01/barber-booking/internal/usecase/loyalty"
)

type LoyaltyHandler struct {
	account *ucLoyalty.GetAccount
}

func NewLoyaltyHandler(account *ucLoyalty.GetAccount) *LoyaltyHandler {
	return &LoyaltyHandler{account: account}
}

func (h *LoyaltyHandler) GetMine(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}

	view, err := h.account.Execute(c.Request.Context(), actor.UserID)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.OK(c, view)
}
