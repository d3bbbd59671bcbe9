package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/skva/kasse/models"
	"github.com/skva/kasse/utils"
)

type MemberStateController struct {
	DB *gorm.DB
}

func NewMemberStateController(db *gorm.DB) *MemberStateController {
	return &MemberStateController{DB: db}
}

func (msc *MemberStateController) GetAllMemberStates(c *gin.Context) {
	var states []models.MemberState
	if err := msc.DB.Order("id ASC").Find(&states).Error; err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of member states", states)
}
