package handler

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/ucrs/court-reservation/internal/booking"
	"github.com/ucrs/court-reservation/internal/line"
	"github.com/ucrs/court-reservation/internal/lock"
	"github.com/ucrs/court-reservation/internal/repository"
)

// WebhookHandler receives LINE platform callbacks.  The only interactive
// flow is the "join" postback sent from the announcement message's button;
// everything else is acknowledged and ignored.  LINE retries deliveries
// that do not return 200, so the handler answers 200 even when individual
// events fail — their errors are logged instead.
type WebhookHandler struct {
	ChannelSecret   string
	Line            *line.Client
	ReservationRepo *repository.ReservationRepo
	MemberRepo      *repository.MemberRepo
	Guard           lock.Acquirer
}

// NewWebhookHandler constructs a WebhookHandler.
func NewWebhookHandler(secret string, client *line.Client, resRepo *repository.ReservationRepo, memberRepo *repository.MemberRepo, guard lock.Acquirer) *WebhookHandler {
	return &WebhookHandler{
		ChannelSecret:   secret,
		Line:            client,
		ReservationRepo: resRepo,
		MemberRepo:      memberRepo,
		Guard:           guard,
	}
}

// Verify handles GET /v1/line/webhook, which LINE's console hits when the
// endpoint URL is saved.
func (h *WebhookHandler) Verify(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"message": "line webhook endpoint"})
}

// Receive handles POST /v1/line/webhook.
func (h *WebhookHandler) Receive(c echo.Context) error {
	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "failed to read body"})
	}
	if !line.ValidateSignature(h.ChannelSecret, body, c.Request().Header.Get("X-Line-Signature")) {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "invalid signature"})
	}

	var payload line.WebhookPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid payload"})
	}

	ctx := c.Request().Context()
	for _, ev := range payload.Events {
		if ev.Type != "postback" || ev.Postback == nil {
			continue
		}
		if err := h.handlePostback(ctx, ev); err != nil {
			log.Printf("webhook: postback failed: %v", err)
		}
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "OK"})
}

// handlePostback processes one postback event.  Postback data is encoded
// as a query string, e.g. "action=join&reservation=42".
func (h *WebhookHandler) handlePostback(ctx context.Context, ev line.Event) error {
	data, err := url.ParseQuery(ev.Postback.Data)
	if err != nil {
		return err
	}
	if data.Get("action") != "join" {
		return nil
	}
	reservationID, err := strconv.ParseUint(data.Get("reservation"), 10, 64)
	if err != nil || reservationID == 0 {
		return errors.New("postback carries no reservation id")
	}
	userID := ev.Source.UserID
	if userID == "" {
		return errors.New("postback carries no source user")
	}

	// Taps on the join button arrive in bursts when the chat client lags;
	// the guard collapses them into one attempt.
	if !h.Guard.TryAcquire(ctx, joinGuardKey(userID, reservationID), joinGuardTTL) {
		return nil
	}

	name, err := h.resolveName(ctx, userID)
	if err != nil {
		return err
	}

	names, joined, err := joinRoster(ctx, h.ReservationRepo, reservationID, name)
	switch {
	case errors.Is(err, repository.ErrReservationNotFound):
		h.reply(ev.ReplyToken, "That session no longer exists.")
		return nil
	case errors.Is(err, booking.ErrRosterFull):
		h.reply(ev.ReplyToken, "Sorry, that session is already full.")
		return nil
	case err != nil:
		return err
	}

	if joined {
		if err := h.MemberRepo.UpsertWithLineID(ctx, name, userID); err != nil {
			log.Printf("webhook: member upsert for %q failed: %v", name, err)
		}
		h.reply(ev.ReplyToken, name+" joined! Current roster: "+strconv.Itoa(len(names)))
	} else {
		h.reply(ev.ReplyToken, "You are already on the roster.")
	}
	return nil
}

// resolveName maps a LINE user id to a display name, preferring the name
// the member has booked under before falling back to their LINE profile.
func (h *WebhookHandler) resolveName(ctx context.Context, userID string) (string, error) {
	name, err := h.MemberRepo.NameByLineID(ctx, userID)
	if err == nil {
		return name, nil
	}
	if !errors.Is(err, repository.ErrMemberNotFound) {
		return "", err
	}
	profile, err := h.Line.GetProfile(ctx, userID)
	if err != nil {
		return "", err
	}
	return profile.DisplayName, nil
}

// reply sends a best-effort text reply; reply tokens are single-use and
// expire quickly, so failures are only logged.
func (h *WebhookHandler) reply(token, text string) {
	if token == "" {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := h.Line.Reply(ctx, token, line.Text(text)); err != nil {
		log.Printf("webhook: reply failed: %v", err)
	}
}
