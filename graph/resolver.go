package graph

import (
	"context"
	"time"

	"hotel/dto"
	"hotel/errors"
	"hotel/metrics"
	"hotel/services"
	"hotel/services/logger"
)

// Handler serves one root field.
type Handler func(ctx context.Context, args map[string]interface{}) (interface{}, error)

// Resolver dispatches root fields to the services.
type Resolver struct {
	Auth     *services.AuthService
	Bookings *services.BookingService
	Rooms    *services.RoomService
	Log      logger.Logger
}

// Queries maps the query root fields to their handlers.
func (r *Resolver) Queries() map[string]Handler {
	return map[string]Handler{
		"availableRooms": r.availableRooms,
		"bookings":       r.bookings,
		"booking":        r.booking,
		"users":          r.users,
		"user":           r.user,
		"userBookings":   r.userBookings,
		"login":          r.login,
	}
}

// Mutations maps the mutation root fields to their handlers.
func (r *Resolver) Mutations() map[string]Handler {
	return map[string]Handler{
		"login":         r.login,
		"register":      r.register,
		"bookRoom":      r.bookRoom,
		"createRoom":    r.createRoom,
		"updateRoom":    r.updateRoom,
		"deleteRoom":    r.deleteRoom,
		"cancelBooking": r.cancelBooking,
	}
}

// run executes h for the named operation and turns its error into the code
// the caller is allowed to see.
func (r *Resolver) run(ctx context.Context, name string, h Handler, args map[string]interface{}) (interface{}, error) {
	start := time.Now()
	result, err := h(ctx, args)
	took := time.Since(start)

	code := errors.CodeOf(err)
	metrics.RecordOperation(name, string(code), took)

	fields := map[string]interface{}{
		"operation": name,
		"took":      took.String(),
	}
	if id := logger.RequestIDFromContext(ctx); id != "" {
		fields["request_id"] = id
	}
	if caller, ok := services.CallerFromContext(ctx); ok {
		fields["user_id"] = caller.UserID
	}
	if err == nil {
		r.Log.Debug("operation resolved", fields)
		return result, nil
	}

	fields["code"] = string(code)
	fields["error"] = err.Error()
	switch code {
	case errors.ErrCodeInternal, errors.ErrCodeDatabase:
		r.Log.Error("operation failed", fields)
	default:
		r.Log.Info("operation rejected", fields)
	}
	return nil, toPublic(err)
}

func (r *Resolver) availableRooms(ctx context.Context, _ map[string]interface{}) (interface{}, error) {
	return r.Rooms.AvailableRooms(ctx)
}

func (r *Resolver) bookings(ctx context.Context, _ map[string]interface{}) (interface{}, error) {
	return r.Bookings.ListBookings(ctx)
}

func (r *Resolver) booking(ctx context.Context, args map[string]interface{}) (interface{}, error) {
	id, err := idArg(args, "id")
	if err != nil {
		return nil, err
	}
	booking, err := r.Bookings.GetBooking(ctx, id)
	if errors.Is(err, errors.ErrCodeBookingNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return booking, nil
}

func (r *Resolver) users(ctx context.Context, _ map[string]interface{}) (interface{}, error) {
	return r.Auth.ListUsers(ctx)
}

func (r *Resolver) user(ctx context.Context, args map[string]interface{}) (interface{}, error) {
	id, err := idArg(args, "id")
	if err != nil {
		return nil, err
	}
	user, err := r.Auth.GetUser(ctx, id)
	if errors.Is(err, errors.ErrCodeUserNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (r *Resolver) userBookings(ctx context.Context, args map[string]interface{}) (interface{}, error) {
	id, err := idArg(args, "userId")
	if err != nil {
		return nil, err
	}
	return r.Bookings.UserBookings(ctx, id)
}

func (r *Resolver) login(ctx context.Context, args map[string]interface{}) (interface{}, error) {
	return r.Auth.Login(ctx, stringArg(args, "email"), stringArg(args, "password"))
}

func (r *Resolver) register(ctx context.Context, args map[string]interface{}) (interface{}, error) {
	return r.Auth.Register(ctx, dto.RegisterInput{
		Email:    stringArg(args, "email"),
		Password: stringArg(args, "password"),
		FullName: optionalString(args, "fullName"),
		Role:     stringArg(args, "role"),
	})
}

func (r *Resolver) bookRoom(ctx context.Context, args map[string]interface{}) (interface{}, error) {
	userID, err := idArg(args, "userId")
	if err != nil {
		return nil, err
	}
	roomID, err := idArg(args, "roomId")
	if err != nil {
		return nil, err
	}
	return r.Bookings.BookRoom(ctx, dto.BookRoomInput{
		UserID:    userID,
		RoomID:    roomID,
		StartDate: stringArg(args, "startDate"),
		EndDate:   stringArg(args, "endDate"),
	})
}

func (r *Resolver) createRoom(ctx context.Context, args map[string]interface{}) (interface{}, error) {
	input := dto.CreateRoomInput{Type: stringArg(args, "type")}
	if price := optionalFloat(args, "price"); price != nil {
		input.Price = *price
	}
	return r.Rooms.CreateRoom(ctx, input)
}

func (r *Resolver) updateRoom(ctx context.Context, args map[string]interface{}) (interface{}, error) {
	id, err := idArg(args, "id")
	if err != nil {
		return nil, err
	}
	return r.Rooms.UpdateRoom(ctx, dto.UpdateRoomInput{
		ID:    id,
		Type:  optionalString(args, "type"),
		Price: optionalFloat(args, "price"),
	})
}

func (r *Resolver) deleteRoom(ctx context.Context, args map[string]interface{}) (interface{}, error) {
	id, err := idArg(args, "id")
	if err != nil {
		return nil, err
	}
	return r.Rooms.DeleteRoom(ctx, id)
}

func (r *Resolver) cancelBooking(ctx context.Context, args map[string]interface{}) (interface{}, error) {
	id, err := idArg(args, "id")
	if err != nil {
		return nil, err
	}
	return r.Bookings.CancelBooking(ctx, id)
}
