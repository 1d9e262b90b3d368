package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/bevisngo/booksan-sub000/internal/auth"
	"github.com/bevisngo/booksan-sub000/internal/booking"
	"github.com/bevisngo/booksan-sub000/internal/calendar"
	"github.com/bevisngo/booksan-sub000/internal/pkg/response"
)

const dateLayout = "2006-01-02"

type Handler struct {
	service booking.Service
	loc     *time.Location
}

// NewHandler creates booking handlers. Date-only query parameters are read in loc.
func NewHandler(service booking.Service, loc *time.Location) *Handler {
	if loc == nil {
		loc = time.UTC
	}
	return &Handler{service: service, loc: loc}
}

// parseDate accepts YYYY-MM-DD in the handler's location or an RFC 3339 timestamp.
// A date-only upper bound covers the whole day.
func (h *Handler) parseDate(s string, upper bool) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	if t, err := time.ParseInLocation(dateLayout, s, h.loc); err == nil {
		if upper {
			t = calendar.Resolve(calendar.ViewDay, t).End
		}
		return &t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (h *Handler) Create(c *gin.Context) {
	var uri FacilityURI
	if err := c.ShouldBindUri(&uri); err != nil {
		response.BadRequest(c, "invalid facility id", err)
		return
	}

	var body CreateBookingRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		response.BadRequest(c, "invalid request body", err)
		return
	}

	slots := make([]booking.SlotInput, len(body.Slots))
	for i, s := range body.Slots {
		slots[i] = booking.SlotInput{Start: s.StartTime, End: s.EndTime}
	}

	b, err := h.service.Create(c.Request.Context(), booking.CreateRequest{
		FacilityID:   uri.FacilityID,
		CourtID:      body.CourtID,
		PlayerID:     body.PlayerID,
		Slots:        slots,
		UnitPrice:    body.UnitPrice,
		TotalPrice:   body.TotalPrice,
		SlotMinutes:  body.SlotMinutes,
		IsRecurrence: body.IsRecurrence,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, NewBookingResponse(b))
}

func (h *Handler) Get(c *gin.Context) {
	var uri BookingURI
	if err := c.ShouldBindUri(&uri); err != nil {
		response.BadRequest(c, "invalid id", err)
		return
	}

	b, err := h.service.GetByID(c.Request.Context(), uri.FacilityID, uri.ID)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewBookingResponse(b))
}

func (h *Handler) ListByCourt(c *gin.Context) {
	var uri CourtURI
	if err := c.ShouldBindUri(&uri); err != nil {
		response.BadRequest(c, "invalid id", err)
		return
	}

	var req CourtBookingsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "invalid query parameters", err)
		return
	}
	anchor, err := h.parseDate(req.Date, false)
	if err != nil {
		response.BadRequest(c, "invalid date", err)
		return
	}
	view, _ := calendar.ParseViewType(req.View)

	bookings, err := h.service.ListByCourt(c.Request.Context(), booking.CourtQuery{
		FacilityID: uri.FacilityID,
		CourtID:    uri.CourtID,
		View:       view,
		Anchor:     *anchor,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewBookingResponses(bookings))
}

func (h *Handler) List(c *gin.Context) {
	var uri FacilityURI
	if err := c.ShouldBindUri(&uri); err != nil {
		response.BadRequest(c, "invalid facility id", err)
		return
	}

	var req ListBookingsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "invalid query parameters", err)
		return
	}
	req.Normalize()

	start, err := h.parseDate(req.StartDate, false)
	if err != nil {
		response.BadRequest(c, "invalid start_date", err)
		return
	}
	end, err := h.parseDate(req.EndDate, true)
	if err != nil {
		response.BadRequest(c, "invalid end_date", err)
		return
	}
	anchor, err := h.parseDate(req.Date, false)
	if err != nil {
		response.BadRequest(c, "invalid date", err)
		return
	}

	q := booking.FacilityQuery{
		FacilityID: uri.FacilityID,
		CourtID:    req.CourtID,
		Status:     booking.Status(req.Status),
		Search:     req.Search,
		StartDate:  start,
		EndDate:    end,
		Pagination: booking.Pagination{Page: req.Page, Limit: req.Limit},
	}
	if req.View != "" {
		q.View, _ = calendar.ParseViewType(req.View)
	}
	if anchor != nil {
		q.Anchor = *anchor
	}

	page, err := h.service.ListByFacility(c.Request.Context(), q)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, response.NewPageResponse(NewBookingResponses(page.Items), page.Page, page.Limit, page.Total))
}

func (h *Handler) CancelSlot(c *gin.Context) {
	var uri SlotURI
	if err := c.ShouldBindUri(&uri); err != nil {
		response.BadRequest(c, "invalid id", err)
		return
	}

	var body CancelSlotRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		response.BadRequest(c, "invalid request body", err)
		return
	}

	b, err := h.service.CancelSlot(c.Request.Context(), booking.CancelRequest{
		FacilityID:  uri.FacilityID,
		SlotID:      uri.SlotID,
		Reason:      body.Reason,
		CancelledBy: auth.GetUserID(c),
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewBookingResponse(b))
}

func (h *Handler) Stats(c *gin.Context) {
	var uri FacilityURI
	if err := c.ShouldBindUri(&uri); err != nil {
		response.BadRequest(c, "invalid facility id", err)
		return
	}

	var req StatsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "invalid query parameters", err)
		return
	}
	start, err := h.parseDate(req.StartDate, false)
	if err != nil {
		response.BadRequest(c, "invalid start_date", err)
		return
	}
	end, err := h.parseDate(req.EndDate, true)
	if err != nil {
		response.BadRequest(c, "invalid end_date", err)
		return
	}

	st, err := h.service.Stats(c.Request.Context(), booking.StatsQuery{
		FacilityID: uri.FacilityID,
		StartDate:  start,
		EndDate:    end,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewStatsResponse(st))
}
