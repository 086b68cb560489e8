package user

import (
	"context"
	"time"

	"github.com/google/uuid"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"github.com/evstore/storefront/internal/apperr"
)

// Client calls the user service. It satisfies the order package's user check.
type Client struct {
	conn    grpc.ClientConnInterface
	timeout time.Duration
}

// Dial opens a plaintext connection to the user service at addr.
func Dial(addr string) (*grpc.ClientConn, error) {
	return grpc.NewClient(addr, grpc.WithTransportCredentials(insecure.NewCredentials()))
}

func NewClient(conn grpc.ClientConnInterface, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Client{conn: conn, timeout: timeout}
}

func (c *Client) ValidateUser(ctx context.Context, id uuid.UUID) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	out := new(wrapperspb.BoolValue)
	if err := c.conn.Invoke(ctx, fullMethod("ValidateUser"), wrapperspb.String(id.String()), out); err != nil {
		return false, fromStatus(err)
	}
	return out.GetValue(), nil
}

func (c *Client) GetUser(ctx context.Context, id uuid.UUID) (*User, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	out := new(structpb.Struct)
	if err := c.conn.Invoke(ctx, fullMethod("GetUser"), wrapperspb.String(id.String()), out); err != nil {
		return nil, fromStatus(err)
	}
	f := out.GetFields()
	u := &User{ID: id, Username: f["username"].GetStringValue(), Email: f["email"].GetStringValue()}
	if ts, err := time.Parse(time.RFC3339, f["created_at"].GetStringValue()); err == nil {
		u.CreatedAt = ts
	}
	return u, nil
}

// fromStatus turns a gRPC status back into an apperr kind.
func fromStatus(err error) error {
	st, ok := status.FromError(err)
	if !ok {
		return apperr.Storage("user service", err)
	}
	switch st.Code() {
	case codes.InvalidArgument:
		return apperr.Invalid("user", st.Message())
	case codes.NotFound:
		return &apperr.NotFoundError{Entity: "user"}
	case codes.AlreadyExists:
		return &apperr.ConflictError{Field: "user", Value: st.Message()}
	default:
		return apperr.Storage("user service", err)
	}
}
