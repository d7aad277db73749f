package graph

import (
	"context"

	"hotel/models"
	"hotel/services"

	"github.com/graphql-go/graphql"
)

func roomOf(src interface{}) models.Room {
	switch v := src.(type) {
	case models.Room:
		return v
	case *models.Room:
		return *v
	}
	return models.Room{}
}

// sessionUser is the user of a login or register payload. Its fields resolve
// as that user, who is not yet the caller of the request.
type sessionUser struct {
	*models.User
}

func userOf(src interface{}) models.User {
	switch v := src.(type) {
	case models.User:
		return v
	case *models.User:
		return *v
	case sessionUser:
		return *v.User
	}
	return models.User{}
}

// callerFor lets a freshly authenticated user read their own nested fields.
func callerFor(ctx context.Context, src interface{}) context.Context {
	su, ok := src.(sessionUser)
	if !ok || su.User == nil {
		return ctx
	}
	return services.WithCaller(ctx, &models.Identity{UserID: su.ID, Email: su.Email, Role: su.Role})
}

func bookingOf(src interface{}) models.Booking {
	switch v := src.(type) {
	case models.Booking:
		return v
	case *models.Booking:
		return *v
	}
	return models.Booking{}
}

func enumOf(name string, values ...string) *graphql.Enum {
	cfg := graphql.EnumValueConfigMap{}
	for _, v := range values {
		cfg[v] = &graphql.EnumValueConfig{Value: v}
	}
	return graphql.NewEnum(graphql.EnumConfig{Name: name, Values: cfg})
}

func roomTypeNames() []string {
	out := make([]string, len(models.RoomTypes))
	for i, t := range models.RoomTypes {
		out[i] = string(t)
	}
	return out
}

func userRoleNames() []string {
	out := make([]string, len(models.UserRoles))
	for i, r := range models.UserRoles {
		out[i] = string(r)
	}
	return out
}

func nonNullList(t graphql.Type) graphql.Output {
	return graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(t)))
}

// NewSchema builds the executable schema over r.
func NewSchema(r *Resolver) (graphql.Schema, error) {
	roomType := enumOf("RoomType", roomTypeNames()...)
	userRole := enumOf("UserRole", userRoleNames()...)

	booking := graphql.NewObject(graphql.ObjectConfig{
		Name: "Booking",
		Fields: graphql.Fields{
			"id": &graphql.Field{
				Type:    graphql.NewNonNull(graphql.ID),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) { return formatID(bookingOf(p.Source).ID), nil },
			},
			"roomId": &graphql.Field{
				Type:    graphql.NewNonNull(graphql.ID),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) { return formatID(bookingOf(p.Source).RoomID), nil },
			},
			"userId": &graphql.Field{
				Type:    graphql.NewNonNull(graphql.ID),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) { return formatID(bookingOf(p.Source).UserID), nil },
			},
			"startDate": &graphql.Field{
				Type: graphql.NewNonNull(graphql.String),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return models.FormatDate(bookingOf(p.Source).StartDate), nil
				},
			},
			"endDate": &graphql.Field{
				Type: graphql.NewNonNull(graphql.String),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return models.FormatDate(bookingOf(p.Source).EndDate), nil
				},
			},
		},
	})

	room := graphql.NewObject(graphql.ObjectConfig{
		Name: "Room",
		Fields: graphql.Fields{
			"id": &graphql.Field{
				Type:    graphql.NewNonNull(graphql.ID),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) { return formatID(roomOf(p.Source).ID), nil },
			},
			"type": &graphql.Field{
				Type:    graphql.NewNonNull(roomType),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) { return string(roomOf(p.Source).Type), nil },
			},
			"price": &graphql.Field{
				Type:    graphql.NewNonNull(graphql.Float),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) { return roomOf(p.Source).Price, nil },
			},
			// derived from the bookings covering today
			"booked": &graphql.Field{
				Type: graphql.NewNonNull(graphql.Boolean),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					booked, err := r.Rooms.IsBooked(p.Context, roomOf(p.Source).ID)
					if err != nil {
						return nil, toPublic(err)
					}
					return booked, nil
				},
			},
		},
	})

	user := graphql.NewObject(graphql.ObjectConfig{
		Name: "User",
		Fields: graphql.Fields{
			"id": &graphql.Field{
				Type:    graphql.NewNonNull(graphql.ID),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) { return formatID(userOf(p.Source).ID), nil },
			},
			"email": &graphql.Field{
				Type:    graphql.NewNonNull(graphql.String),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) { return userOf(p.Source).Email, nil },
			},
			"fullName": &graphql.Field{
				Type: graphql.String,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					if name := userOf(p.Source).FullName; name != nil {
						return *name, nil
					}
					return nil, nil
				},
			},
			"role": &graphql.Field{
				Type:    graphql.NewNonNull(userRole),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) { return string(userOf(p.Source).Role), nil },
			},
			"bookings": &graphql.Field{
				Type: graphql.NewList(graphql.NewNonNull(booking)),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					bookings, err := r.Bookings.UserBookings(callerFor(p.Context, p.Source), userOf(p.Source).ID)
					if err != nil {
						return nil, toPublic(err)
					}
					return bookings, nil
				},
			},
		},
	})

	authPayload := graphql.NewObject(graphql.ObjectConfig{
		Name: "AuthPayload",
		Fields: graphql.Fields{
			"token": &graphql.Field{
				Type: graphql.NewNonNull(graphql.String),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return p.Source.(*models.AuthPayload).Token, nil
				},
			},
			"user": &graphql.Field{
				Type: graphql.NewNonNull(user),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					payload := p.Source.(*models.AuthPayload)
					if payload.User == nil {
						return nil, nil
					}
					return sessionUser{payload.User}, nil
				},
			},
		},
	})

	id := graphql.NewNonNull(graphql.ID)
	str := graphql.NewNonNull(graphql.String)
	credentials := graphql.FieldConfigArgument{
		"email":    &graphql.ArgumentConfig{Type: str},
		"password": &graphql.ArgumentConfig{Type: str},
	}

	queries := r.Queries()
	query := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"availableRooms": r.field("availableRooms", queries, nonNullList(room), nil),
			"bookings":       r.field("bookings", queries, nonNullList(booking), nil),
			"booking": r.field("booking", queries, booking, graphql.FieldConfigArgument{
				"id": &graphql.ArgumentConfig{Type: id},
			}),
			"users": r.field("users", queries, nonNullList(user), nil),
			"user": r.field("user", queries, user, graphql.FieldConfigArgument{
				"id": &graphql.ArgumentConfig{Type: id},
			}),
			"login": r.field("login", queries, graphql.NewNonNull(authPayload), credentials),
			"userBookings": r.field("userBookings", queries, nonNullList(booking), graphql.FieldConfigArgument{
				"userId": &graphql.ArgumentConfig{Type: id},
			}),
		},
	})

	mutations := r.Mutations()
	mutation := graphql.NewObject(graphql.ObjectConfig{
		Name: "Mutation",
		Fields: graphql.Fields{
			"bookRoom": r.field("bookRoom", mutations, graphql.NewNonNull(booking), graphql.FieldConfigArgument{
				"userId":    &graphql.ArgumentConfig{Type: id},
				"roomId":    &graphql.ArgumentConfig{Type: id},
				"startDate": &graphql.ArgumentConfig{Type: str},
				"endDate":   &graphql.ArgumentConfig{Type: str},
			}),
			"register": r.field("register", mutations, graphql.NewNonNull(authPayload), graphql.FieldConfigArgument{
				"email":    &graphql.ArgumentConfig{Type: str},
				"password": &graphql.ArgumentConfig{Type: str},
				"fullName": &graphql.ArgumentConfig{Type: graphql.String},
				"role":     &graphql.ArgumentConfig{Type: graphql.NewNonNull(userRole)},
			}),
			"login": r.field("login", mutations, graphql.NewNonNull(authPayload), credentials),
			"createRoom": r.field("createRoom", mutations, graphql.NewNonNull(room), graphql.FieldConfigArgument{
				"type":  &graphql.ArgumentConfig{Type: graphql.NewNonNull(roomType)},
				"price": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Float)},
			}),
			"updateRoom": r.field("updateRoom", mutations, graphql.NewNonNull(room), graphql.FieldConfigArgument{
				"id":    &graphql.ArgumentConfig{Type: id},
				"type":  &graphql.ArgumentConfig{Type: roomType},
				"price": &graphql.ArgumentConfig{Type: graphql.Float},
			}),
			"deleteRoom": r.field("deleteRoom", mutations, graphql.NewNonNull(room), graphql.FieldConfigArgument{
				"id": &graphql.ArgumentConfig{Type: id},
			}),
			"cancelBooking": r.field("cancelBooking", mutations, graphql.NewNonNull(booking), graphql.FieldConfigArgument{
				"id": &graphql.ArgumentConfig{Type: id},
			}),
		},
	})

	return graphql.NewSchema(graphql.SchemaConfig{Query: query, Mutation: mutation})
}

func (r *Resolver) field(name string, table map[string]Handler, t graphql.Output, args graphql.FieldConfigArgument) *graphql.Field {
	h := table[name]
	return &graphql.Field{
		Type: t,
		Args: args,
		Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			return r.run(p.Context, name, h, p.Args)
		},
	}
}
