package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/skva/kasse/models"
	"github.com/skva/kasse/services"
	"github.com/skva/kasse/utils"
)

type MemberController struct {
	DB *gorm.DB
}

func NewMemberController(db *gorm.DB) *MemberController {
	return &MemberController{DB: db}
}

// memberRow is one search result, enriched with the state name.
type memberRow struct {
	models.Member
	MemberStateName string `json:"member_state_name"`
}

// GetAllMembers searches members case-insensitively on the concatenated
// first+last name and pages with limit/offset. The response carries the
// page plus the unpaginated match count.
func (mc *MemberController) GetAllMembers(c *gin.Context) {
	search := c.Query("search")
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	base := mc.DB.Model(&models.Member{}).
		Joins("JOIN member_states ms ON ms.id = members.member_state_id")
	if search != "" {
		fullName := services.FullNameExpr(mc.DB.Dialector.Name(), "members")
		base = base.Where("LOWER("+fullName+") LIKE ?",
			"%"+strings.ToLower(search)+"%")
	}

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		respondServiceError(c, err)
		return
	}

	var members []memberRow
	err := base.Session(&gorm.Session{}).
		Select("members.*, ms.name AS member_state_name").
		Order("members.last_name ASC, members.first_name ASC").
		Limit(limit).
		Offset(offset).
		Scan(&members).Error
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "List of members", gin.H{
		"data":  members,
		"total": total,
	})
}

func (mc *MemberController) GetMemberByID(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid member id"))
		return
	}

	var member models.Member
	if err := mc.DB.First(&member, id).Error; err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Member detail", member)
}

type memberRequest struct {
	FirstName         string `json:"first_name"`
	LastName          string `json:"last_name"`
	Birthdate         string `json:"birthdate"`
	Email             string `json:"email"`
	Phone             string `json:"phone"`
	MembershipNumber  string `json:"membership_number"`
	MemberStateID     uint   `json:"member_state_id"`
	Discount          *int   `json:"discount"`
	IsActive          *int   `json:"is_active"`
	IsServiceRequired *int   `json:"is_service_required"`
}

func (r *memberRequest) validate() error {
	switch {
	case r.FirstName == "":
		return errors.New("first_name is required")
	case r.LastName == "":
		return errors.New("last_name is required")
	case r.Birthdate == "":
		return errors.New("birthdate is required")
	case r.MembershipNumber == "":
		return errors.New("membership_number is required")
	case r.MemberStateID == 0:
		return errors.New("member_state_id is required")
	}
	return nil
}

func intOr(v *int, fallback int) int {
	if v != nil {
		return *v
	}
	return fallback
}

func (mc *MemberController) CreateMember(c *gin.Context) {
	var req memberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	if err := req.validate(); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var existing models.Member
	if err := mc.DB.Where("membership_number = ?", req.MembershipNumber).First(&existing).Error; err == nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("membership number already in use"))
		return
	}

	member := models.Member{
		FirstName:         req.FirstName,
		LastName:          req.LastName,
		Birthdate:         req.Birthdate,
		Email:             req.Email,
		Phone:             req.Phone,
		MembershipNumber:  req.MembershipNumber,
		MemberStateID:     req.MemberStateID,
		Discount:          intOr(req.Discount, 0),
		IsActive:          intOr(req.IsActive, 1),
		IsServiceRequired: intOr(req.IsServiceRequired, 1),
	}
	if err := mc.DB.Create(&member).Error; err != nil {
		respondServiceError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusCreated, "Member created", gin.H{"member_id": member.ID})
}

func (mc *MemberController) UpdateMember(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid member id"))
		return
	}

	var member models.Member
	if err := mc.DB.First(&member, id).Error; err != nil {
		respondServiceError(c, err)
		return
	}

	var req memberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	if err := req.validate(); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var existing models.Member
	if err := mc.DB.Where("membership_number = ? AND id <> ?", req.MembershipNumber, member.ID).
		First(&existing).Error; err == nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("membership number already in use"))
		return
	}

	member.FirstName = req.FirstName
	member.LastName = req.LastName
	member.Birthdate = req.Birthdate
	member.Email = req.Email
	member.Phone = req.Phone
	member.MembershipNumber = req.MembershipNumber
	member.MemberStateID = req.MemberStateID
	member.Discount = intOr(req.Discount, member.Discount)
	member.IsActive = intOr(req.IsActive, member.IsActive)
	member.IsServiceRequired = intOr(req.IsServiceRequired, member.IsServiceRequired)

	if err := mc.DB.Save(&member).Error; err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Member updated", member)
}

func (mc *MemberController) DeleteMember(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid member id"))
		return
	}

	result := mc.DB.Delete(&models.Member{}, id)
	if result.Error != nil {
		respondServiceError(c, result.Error)
		return
	}
	if result.RowsAffected == 0 {
		utils.RespondError(c, http.StatusNotFound, errors.New("member not found"))
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Member deleted", gin.H{"member_id": id})
}
