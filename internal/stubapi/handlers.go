package stubapi

import (
	"errors"
	"net/http"
	"time"

	"gymdesk/console/internal/domain"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Handler carries the store and token issuer behind the HTTP surface.
type Handler struct {
	store  *Store
	tokens tokenIssuer
	logger *zap.Logger
}

func NewHandler(store *Store, secret string, ttl time.Duration, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{store: store, tokens: newTokenIssuer(secret, ttl), logger: logger}
}

// --- request payloads (binding-validated) ---

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type createMemberRequest struct {
	Name           string `json:"name" binding:"required"`
	Age            int    `json:"age" binding:"required,gt=0"`
	Email          string `json:"email" binding:"required,email"`
	Password       string `json:"password" binding:"required,min=6"`
	MembershipType string `json:"membershipType" binding:"required"`
	ContactInfo    string `json:"contactInfo" binding:"required"`
}

type updateMemberRequest struct {
	Name           string `json:"name" binding:"required"`
	Age            int    `json:"age" binding:"required,gt=0"`
	Email          string `json:"email" binding:"required,email"`
	MembershipType string `json:"membershipType" binding:"required"`
	ContactInfo    string `json:"contactInfo" binding:"required"`
}

type createTrainerRequest struct {
	Name        string `json:"name" binding:"required"`
	Age         int    `json:"age" binding:"required,gt=0"`
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required,min=6"`
	ContactInfo string `json:"contactInfo" binding:"required"`
}

type updateTrainerRequest struct {
	Name        string `json:"name" binding:"required"`
	Age         int    `json:"age" binding:"required,gt=0"`
	Email       string `json:"email" binding:"required,email"`
	ContactInfo string `json:"contactInfo" binding:"required"`
}

type createScheduleRequest struct {
	Title     string `json:"title" binding:"required"`
	Date      string `json:"date" binding:"required"`
	Time      string `json:"time" binding:"required"`
	TrainerID string `json:"trainerId" binding:"required"`
}

type assignTrainerRequest struct {
	TrainerID string `json:"trainerId" binding:"required"`
}

type addMemberRequest struct {
	MemberID string `json:"memberId" binding:"required"`
}

// --- auth ---

func (h *Handler) login(role domain.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req loginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			abortWithError(c, http.StatusBadRequest, "email and password are required")
			return
		}
		identity, err := h.store.Authenticate(role, req.Email, req.Password)
		if err != nil {
			abortWithError(c, http.StatusUnauthorized, "invalid credentials")
			return
		}
		token, err := h.tokens.issue(identity.ID, role)
		if err != nil {
			h.logger.Error("token mint failed", zap.Error(err))
			abortWithError(c, http.StatusInternalServerError, "could not create token")
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"token": token,
			"role":  role,
			"user":  identity,
		})
	}
}

// --- members ---

func (h *Handler) listMembers(c *gin.Context) {
	c.JSON(http.StatusOK, h.store.ListMembers())
}

func (h *Handler) createMember(c *gin.Context) {
	var req createMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "invalid member payload: "+err.Error())
		return
	}
	member, err := h.store.CreateMember(domain.MemberCreate{
		Name:           req.Name,
		Age:            req.Age,
		Email:          req.Email,
		Password:       req.Password,
		MembershipType: req.MembershipType,
		ContactInfo:    req.ContactInfo,
	})
	if err != nil {
		if errors.Is(err, ErrEmailTaken) {
			abortWithError(c, http.StatusBadRequest, err.Error())
			return
		}
		abortWithError(c, http.StatusInternalServerError, "could not create member")
		return
	}
	c.JSON(http.StatusCreated, member)
}

func (h *Handler) updateMember(c *gin.Context) {
	var req updateMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "invalid member payload: "+err.Error())
		return
	}
	member, err := h.store.UpdateMember(c.Param("id"), domain.MemberUpdate{
		Name:           req.Name,
		Age:            req.Age,
		Email:          req.Email,
		MembershipType: req.MembershipType,
		ContactInfo:    req.ContactInfo,
	})
	if err != nil {
		abortWithError(c, http.StatusNotFound, "member not found")
		return
	}
	c.JSON(http.StatusOK, member)
}

func (h *Handler) deleteMember(c *gin.Context) {
	if err := h.store.DeleteMember(c.Param("id")); err != nil {
		abortWithError(c, http.StatusNotFound, "member not found")
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) assignTrainer(c *gin.Context) {
	var req assignTrainerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "trainerId is required")
		return
	}
	if err := h.store.AssignTrainer(c.Param("id"), req.TrainerID); err != nil {
		abortWithError(c, http.StatusNotFound, "member or trainer not found")
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) memberMe(c *gin.Context) {
	member, err := h.store.GetMember(callerID(c))
	if err != nil {
		abortWithError(c, http.StatusNotFound, "member not found")
		return
	}
	c.JSON(http.StatusOK, member)
}

func (h *Handler) memberAssignedTrainer(c *gin.Context) {
	trainer, err := h.store.AssignedTrainer(callerID(c))
	if err != nil {
		abortWithError(c, http.StatusNotFound, "no trainer assigned")
		return
	}
	c.JSON(http.StatusOK, trainer)
}

func (h *Handler) memberSchedules(c *gin.Context) {
	c.JSON(http.StatusOK, h.store.SchedulesOfMember(callerID(c)))
}

// --- trainers ---

func (h *Handler) listTrainers(c *gin.Context) {
	c.JSON(http.StatusOK, h.store.ListTrainers())
}

func (h *Handler) createTrainer(c *gin.Context) {
	var req createTrainerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "invalid trainer payload: "+err.Error())
		return
	}
	trainer, err := h.store.CreateTrainer(domain.TrainerCreate{
		Name:        req.Name,
		Age:         req.Age,
		Email:       req.Email,
		Password:    req.Password,
		ContactInfo: req.ContactInfo,
	})
	if err != nil {
		if errors.Is(err, ErrEmailTaken) {
			abortWithError(c, http.StatusBadRequest, err.Error())
			return
		}
		abortWithError(c, http.StatusInternalServerError, "could not create trainer")
		return
	}
	c.JSON(http.StatusCreated, trainer)
}

func (h *Handler) updateTrainer(c *gin.Context) {
	var req updateTrainerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "invalid trainer payload: "+err.Error())
		return
	}
	trainer, err := h.store.UpdateTrainer(c.Param("id"), domain.TrainerUpdate{
		Name:        req.Name,
		Age:         req.Age,
		Email:       req.Email,
		ContactInfo: req.ContactInfo,
	})
	if err != nil {
		abortWithError(c, http.StatusNotFound, "trainer not found")
		return
	}
	c.JSON(http.StatusOK, trainer)
}

func (h *Handler) deleteTrainer(c *gin.Context) {
	if err := h.store.DeleteTrainer(c.Param("id")); err != nil {
		abortWithError(c, http.StatusNotFound, "trainer not found")
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) trainerAssignedMembers(c *gin.Context) {
	members := h.store.MembersOfTrainer(callerID(c))
	if members == nil {
		members = []domain.Member{}
	}
	c.JSON(http.StatusOK, members)
}

func (h *Handler) trainerSchedules(c *gin.Context) {
	schedules := h.store.SchedulesOfTrainer(callerID(c))
	if schedules == nil {
		schedules = []domain.Schedule{}
	}
	c.JSON(http.StatusOK, schedules)
}

// --- schedules ---

func (h *Handler) listSchedules(c *gin.Context) {
	// Only the documented date filter is accepted.
	for key := range c.Request.URL.Query() {
		if key != "date" {
			abortWithError(c, http.StatusBadRequest, "unsupported filter: "+key)
			return
		}
	}
	c.JSON(http.StatusOK, h.store.ListSchedules(c.Query("date")))
}

func (h *Handler) createSchedule(c *gin.Context) {
	var req createScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "invalid schedule payload: "+err.Error())
		return
	}
	schedule, err := h.store.CreateSchedule(domain.ScheduleCreate{
		Title:     req.Title,
		Date:      req.Date,
		Time:      req.Time,
		TrainerID: req.TrainerID,
	})
	if err != nil {
		abortWithError(c, http.StatusNotFound, "trainer not found")
		return
	}
	c.JSON(http.StatusCreated, schedule)
}

func (h *Handler) deleteSchedule(c *gin.Context) {
	if err := h.store.DeleteSchedule(c.Param("id")); err != nil {
		abortWithError(c, http.StatusNotFound, "schedule not found")
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) addMemberToSchedule(c *gin.Context) {
	var req addMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "memberId is required")
		return
	}
	if err := h.store.AddMemberToSchedule(c.Param("id"), req.MemberID); err != nil {
		abortWithError(c, http.StatusNotFound, "schedule or member not found")
		return
	}
	c.Status(http.StatusNoContent)
}

// --- reports ---

func (h *Handler) dashboard(c *gin.Context) {
	c.JSON(http.StatusOK, h.store.DashboardStats())
}
