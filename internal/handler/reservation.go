package handler

import (
	"context"  // request-scoped contexts for repository calls
	"errors"   // sentinel error matching
	"log"      // best-effort failures are logged, never surfaced
	"net/http" // HTTP status codes
	"strconv"  // guard key formatting
	"time"     // timezone-aware "today" and guard TTL

	"github.com/labstack/echo/v4"

	"github.com/ucrs/court-reservation/internal/booking"
	"github.com/ucrs/court-reservation/internal/lock"
	"github.com/ucrs/court-reservation/internal/model"
	"github.com/ucrs/court-reservation/internal/queue"
	"github.com/ucrs/court-reservation/internal/repository"
	queue_publisher "github.com/ucrs/court-reservation/internal/service"
)

// joinGuardTTL is the window within which repeated join triggers for the
// same participant and reservation are dropped.
const joinGuardTTL = 15 * time.Second

// ReservationHandler serves the reservation CRUD and join endpoints.  The
// admissibility validator and the persistence write share one transaction:
// same-date rows are locked with FOR UPDATE before the overlap check so two
// concurrent requests for intersecting slots cannot both pass.  Member
// upserts and the group announcement are decoupled best-effort steps — a
// failure there is logged and never rolls back the reservation.
type ReservationHandler struct {
	ReservationRepo *repository.ReservationRepo // reservation persistence
	MemberRepo      *repository.MemberRepo      // opportunistic member upserts
	Guard           lock.Acquirer               // join re-entrancy guard
	Loc             *time.Location              // application timezone for "today"
	Announce        bool                        // whether to publish created events
}

// NewReservationHandler constructs a ReservationHandler.  All dependencies
// except the announcement flag must be non-nil.
func NewReservationHandler(resRepo *repository.ReservationRepo, memberRepo *repository.MemberRepo, guard lock.Acquirer, loc *time.Location, announce bool) *ReservationHandler {
	if resRepo == nil || memberRepo == nil || guard == nil || loc == nil {
		panic("nil dependency passed to NewReservationHandler")
	}
	return &ReservationHandler{
		ReservationRepo: resRepo,
		MemberRepo:      memberRepo,
		Guard:           guard,
		Loc:             loc,
		Announce:        announce,
	}
}

// reservationRequest is the body shared by creation and update.  Update
// ignores Date (the date of a reservation cannot change) and Notify.
type reservationRequest struct {
	Date        string   `json:"date"`
	StartTime   string   `json:"start_time"`
	EndTime     string   `json:"end_time"`
	MaxMembers  *int     `json:"max_members"`
	MemberNames []string `json:"member_names"`
	Purpose     string   `json:"purpose"`
	Comment     *string  `json:"comment"`
	Notify      bool     `json:"notify"`
}

// List handles GET /v1/reservations and returns every reservation for the
// calendar view.
func (h *ReservationHandler) List(c echo.Context) error {
	items, err := h.ReservationRepo.List(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load reservations"})
	}
	return c.JSON(http.StatusOK, items)
}

// ListByDate handles GET /v1/reservations/date/:date.
func (h *ReservationHandler) ListByDate(c echo.Context) error {
	date := c.Param("date")
	if _, err := time.Parse(booking.DateLayout, date); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid date"})
	}
	items, err := h.ReservationRepo.ListByDate(c.Request().Context(), date)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load reservations"})
	}
	return c.JSON(http.StatusOK, items)
}

// Get handles GET /v1/reservations/:id.
func (h *ReservationHandler) Get(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid reservation id"})
	}
	res, err := h.ReservationRepo.GetByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrReservationNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "reservation not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load reservation"})
	}
	return c.JSON(http.StatusOK, res)
}

// Create handles POST /v1/reservations.  The admissibility checks run
// twice: once cheaply against an empty overlap universe to reject bad input
// before opening a transaction, then again with the locked same-date rows.
func (h *ReservationHandler) Create(c echo.Context) error {
	var body reservationRequest
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	// Balls-only bookings carry an implicit capacity of one.
	if body.Purpose == booking.PurposeBallsOnly {
		one := 1
		body.MaxMembers = &one
	}
	cand := booking.Candidate{
		Date:        body.Date,
		StartTime:   body.StartTime,
		EndTime:     body.EndTime,
		MaxMembers:  body.MaxMembers,
		MemberNames: body.MemberNames,
		Purpose:     body.Purpose,
	}
	today := time.Now().In(h.Loc)
	if err := booking.ValidateCreate(cand, nil, today); err != nil {
		if handled, resp := validationResponse(c, err); handled {
			return resp
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "validation failed"})
	}

	ctx := c.Request().Context()
	tx, err := h.ReservationRepo.DB().BeginTx(ctx, nil)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to start transaction"})
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	sameDay, err := h.ReservationRepo.ListByDateForUpdateTx(ctx, tx, body.Date, 0)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to check availability"})
	}
	if err := booking.ValidateCreate(cand, windowsOf(sameDay), today); err != nil {
		if handled, resp := validationResponse(c, err); handled {
			return resp
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "validation failed"})
	}

	res := &model.Reservation{
		Date:        body.Date,
		StartTime:   body.StartTime,
		EndTime:     body.EndTime,
		MaxMembers:  body.MaxMembers,
		MemberNames: body.MemberNames,
		Purpose:     body.Purpose,
		Comment:     body.Comment,
	}
	if err := h.ReservationRepo.CreateTx(ctx, tx, res); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create reservation"})
	}
	if err := tx.Commit(); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to commit transaction"})
	}
	committed = true

	h.upsertMembers(ctx, res.MemberNames)
	if h.Announce && body.Notify && res.Purpose != booking.PurposeBallsOnly {
		h.publishCreated(ctx, res)
	}
	return c.JSON(http.StatusCreated, res)
}

// Update handles PUT /v1/reservations/:id.  The date of a reservation is
// immutable; the stored date defines the overlap universe, from which the
// edited reservation itself is excluded.
func (h *ReservationHandler) Update(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid reservation id"})
	}
	var body reservationRequest
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}

	ctx := c.Request().Context()
	current, err := h.ReservationRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrReservationNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "reservation not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load reservation"})
	}

	if body.Purpose == booking.PurposeBallsOnly {
		one := 1
		body.MaxMembers = &one
	}
	cand := booking.Candidate{
		Date:        current.Date,
		StartTime:   body.StartTime,
		EndTime:     body.EndTime,
		MaxMembers:  body.MaxMembers,
		MemberNames: body.MemberNames,
		Purpose:     body.Purpose,
	}
	if err := booking.ValidateUpdate(cand, nil); err != nil {
		if handled, resp := validationResponse(c, err); handled {
			return resp
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "validation failed"})
	}

	tx, err := h.ReservationRepo.DB().BeginTx(ctx, nil)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to start transaction"})
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	sameDay, err := h.ReservationRepo.ListByDateForUpdateTx(ctx, tx, current.Date, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to check availability"})
	}
	if err := booking.ValidateUpdate(cand, windowsOf(sameDay)); err != nil {
		if handled, resp := validationResponse(c, err); handled {
			return resp
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "validation failed"})
	}

	updated := &model.Reservation{
		ID:          id,
		Date:        current.Date,
		StartTime:   body.StartTime,
		EndTime:     body.EndTime,
		MaxMembers:  body.MaxMembers,
		MemberNames: body.MemberNames,
		Purpose:     body.Purpose,
		Comment:     current.Comment,
	}
	if err := h.ReservationRepo.UpdateTx(ctx, tx, updated); err != nil {
		if errors.Is(err, repository.ErrReservationNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "reservation not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update reservation"})
	}
	if err := tx.Commit(); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to commit transaction"})
	}
	committed = true

	h.upsertMembers(ctx, updated.MemberNames)
	return c.JSON(http.StatusOK, updated)
}

// Delete handles DELETE /v1/reservations/:id.  Deletion is outright; there
// is no soft delete or history.
func (h *ReservationHandler) Delete(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid reservation id"})
	}
	if err := h.ReservationRepo.Delete(c.Request().Context(), id); err != nil {
		if errors.Is(err, repository.ErrReservationNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "reservation not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to delete reservation"})
	}
	return c.NoContent(http.StatusNoContent)
}

// joinRequest identifies the joining participant.  ParticipantID is the
// LINE user id when the join comes from the LIFF front end; the guard falls
// back to the display name when it is absent.
type joinRequest struct {
	ParticipantID string `json:"participant_id"`
	Name          string `json:"name"`
}

// Join handles POST /v1/reservations/:id/join.  Rapid-fire duplicates
// within the guard window are dropped silently with 202; a participant who
// is already on the roster gets a successful no-op.
func (h *ReservationHandler) Join(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid reservation id"})
	}
	var body joinRequest
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if body.Name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name is required"})
	}

	ctx := c.Request().Context()
	participant := body.ParticipantID
	if participant == "" {
		participant = body.Name
	}
	if !h.Guard.TryAcquire(ctx, joinGuardKey(participant, id), joinGuardTTL) {
		// A duplicate of an in-flight join; drop it without an error.
		return c.JSON(http.StatusAccepted, echo.Map{"status": "duplicate"})
	}

	names, joined, err := joinRoster(ctx, h.ReservationRepo, id, body.Name)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrReservationNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "reservation not found"})
		case errors.Is(err, booking.ErrRosterFull):
			return c.JSON(http.StatusConflict, echo.Map{"error": "full"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to join reservation"})
	}
	if joined && body.ParticipantID != "" {
		if err := h.MemberRepo.UpsertWithLineID(ctx, body.Name, body.ParticipantID); err != nil {
			log.Printf("handler: member upsert for %q failed: %v", body.Name, err)
		}
	}
	status := "joined"
	if !joined {
		status = "already_joined"
	}
	return c.JSON(http.StatusOK, echo.Map{"status": status, "member_names": names})
}

// joinGuardKey builds the re-entrancy guard key for one participant and
// reservation.
func joinGuardKey(participant string, reservationID uint64) string {
	return "join:" + participant + ":" + strconv.FormatUint(reservationID, 10)
}

// joinRoster runs the roster mutation inside a transaction with a row lock
// on the reservation, so concurrent appends serialize.  It never re-runs
// the admissibility validator: a join cannot change the time window.
func joinRoster(ctx context.Context, repo *repository.ReservationRepo, id uint64, name string) ([]string, bool, error) {
	tx, err := repo.DB().BeginTx(ctx, nil)
	if err != nil {
		return nil, false, err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	res, err := repo.GetByIDForUpdateTx(ctx, tx, id)
	if err != nil {
		return nil, false, err
	}
	names, joined, err := booking.Join(res.MemberNames, res.MaxMembers, name)
	if err != nil {
		return nil, false, err
	}
	if joined {
		if err := repo.UpdateMembersTx(ctx, tx, id, names); err != nil {
			return nil, false, err
		}
	}
	if err := tx.Commit(); err != nil {
		return nil, false, err
	}
	committed = true
	return names, joined, nil
}

// upsertMembers registers new roster names, logging failures.  Member rows
// are a lookup aid for notifications; their consistency is intentionally
// weaker than the reservation's.
func (h *ReservationHandler) upsertMembers(ctx context.Context, names []string) {
	if err := h.MemberRepo.UpsertNames(ctx, names); err != nil {
		log.Printf("handler: member upsert failed: %v", err)
	}
}

// publishCreated emits the announcement event.  Publish failures are
// swallowed by design — the reservation is already committed.
func (h *ReservationHandler) publishCreated(ctx context.Context, res *model.Reservation) {
	owner := ""
	if len(res.MemberNames) > 0 {
		owner = res.MemberNames[0]
	}
	_ = queue_publisher.PublishReservationCreated(ctx, queue.ReservationCreatedEvent{
		ReservationID: res.ID,
		Date:          res.Date,
		StartTime:     res.StartTime,
		EndTime:       res.EndTime,
		OwnerName:     owner,
		Purpose:       res.Purpose,
		MaxMembers:    res.MaxMembers,
		CreatedAt:     time.Now().UTC().Format(time.RFC3339),
	})
}
