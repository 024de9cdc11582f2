package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"hostel-management-backend/internal/model"
	"hostel-management-backend/internal/parse"
)

// ListAvailableRooms returns rooms students can book right now.
func (h *Handler) ListAvailableRooms(c *gin.Context) {
	rooms, err := h.store.ListRooms(c.Request.Context(), true)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, rooms)
}

// ListRooms returns all rooms; pass ?available=true to filter.
func (h *Handler) ListRooms(c *gin.Context) {
	onlyAvailable := c.Query("available") == "true"
	rooms, err := h.store.ListRooms(c.Request.Context(), onlyAvailable)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, rooms)
}

type roomRequest struct {
	RoomNumber  string  `json:"roomNumber" binding:"required,max=10"`
	Capacity    int     `json:"capacity" binding:"required,min=1,max=4"`
	MonthlyFee  float64 `json:"monthlyFee" binding:"required,gt=0"`
	Amenities   string  `json:"amenities"`
	IsAvailable *bool   `json:"isAvailable"`
}

// CreateRoom adds a room to the inventory. Block, floor and sequence are
// derived from the room number.
func (h *Handler) CreateRoom(c *gin.Context) {
	var req roomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	loc, err := parse.ParseRoomNumber(req.RoomNumber)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	room := &model.Room{
		RoomNumber:  loc.String(),
		Block:       loc.Block,
		Floor:       loc.Floor,
		Seq:         loc.Seq,
		Capacity:    req.Capacity,
		MonthlyFee:  req.MonthlyFee,
		Amenities:   req.Amenities,
		IsAvailable: true,
	}
	if req.IsAvailable != nil {
		room.IsAvailable = *req.IsAvailable
	}
	if err := h.store.CreateRoom(c.Request.Context(), room); err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": "room number already exists"})
		return
	}
	c.JSON(http.StatusCreated, room)
}

// UpdateRoom replaces the mutable fields of an existing room.
func (h *Handler) UpdateRoom(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("room_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid room id"})
		return
	}

	var req roomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	room, err := h.store.GetRoom(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}

	loc, err := parse.ParseRoomNumber(req.RoomNumber)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	room.RoomNumber = loc.String()
	room.Block = loc.Block
	room.Floor = loc.Floor
	room.Seq = loc.Seq
	room.Capacity = req.Capacity
	room.MonthlyFee = req.MonthlyFee
	room.Amenities = req.Amenities
	if req.IsAvailable != nil {
		room.IsAvailable = *req.IsAvailable
	}

	if err := h.store.UpdateRoom(c.Request.Context(), room); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, room)
}
