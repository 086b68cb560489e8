package user

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"github.com/evstore/storefront/internal/apperr"
)

// ServiceName is the fully-qualified gRPC service name. Messages are protobuf
// well-known types, so no generated code is needed on either side.
const ServiceName = "storefront.user.v1.UserService"

func fullMethod(name string) string { return "/" + ServiceName + "/" + name }

type UserServiceServer interface {
	// CreateUser takes {username, email, password} and returns the user.
	CreateUser(context.Context, *structpb.Struct) (*structpb.Struct, error)
	// GetUser takes the user id.
	GetUser(context.Context, *wrapperspb.StringValue) (*structpb.Struct, error)
	// ValidateUser reports whether the user id exists.
	ValidateUser(context.Context, *wrapperspb.StringValue) (*wrapperspb.BoolValue, error)
	// AuthenticateUser takes {email, password} and returns {ok, user_id}.
	AuthenticateUser(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*UserServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		unary("CreateUser", newStruct, UserServiceServer.CreateUser),
		unary("GetUser", newString, UserServiceServer.GetUser),
		unary("ValidateUser", newString, UserServiceServer.ValidateUser),
		unary("AuthenticateUser", newStruct, UserServiceServer.AuthenticateUser),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "storefront/user/v1/user.proto",
}

func newStruct() *structpb.Struct { return new(structpb.Struct) }
func newString() *wrapperspb.StringValue { return new(wrapperspb.StringValue) }

func unary[Req proto.Message, Resp any](name string, newReq func() Req, call func(UserServiceServer, context.Context, Req) (Resp, error)) grpc.MethodDesc {
	return grpc.MethodDesc{
		MethodName: name,
		Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
			in := newReq()
			if err := dec(in); err != nil {
				return nil, err
			}
			handler := func(ctx context.Context, req any) (any, error) {
				return call(srv.(UserServiceServer), ctx, req.(Req))
			}
			if interceptor == nil {
				return handler(ctx, in)
			}
			info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod(name)}
			return interceptor(ctx, in, info, handler)
		},
	}
}

func RegisterUserServiceServer(s grpc.ServiceRegistrar, srv UserServiceServer) {
	s.RegisterService(&ServiceDesc, srv)
}

// GRPCServer exposes Service over gRPC.
type GRPCServer struct {
	svc *Service
}

func NewGRPCServer(svc *Service) *GRPCServer { return &GRPCServer{svc: svc} }

func (g *GRPCServer) CreateUser(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	f := in.GetFields()
	u, err := g.svc.Register(ctx, NewUser{
		Username: f["username"].GetStringValue(),
		Email:    f["email"].GetStringValue(),
		Password: f["password"].GetStringValue(),
	})
	if err != nil {
		return nil, toStatus(err)
	}
	return userStruct(u)
}

func (g *GRPCServer) GetUser(ctx context.Context, in *wrapperspb.StringValue) (*structpb.Struct, error) {
	id, err := parseID(in.GetValue())
	if err != nil {
		return nil, err
	}
	u, err := g.svc.Get(ctx, id)
	if err != nil {
		return nil, toStatus(err)
	}
	return userStruct(u)
}

func (g *GRPCServer) ValidateUser(ctx context.Context, in *wrapperspb.StringValue) (*wrapperspb.BoolValue, error) {
	id, err := parseID(in.GetValue())
	if err != nil {
		return nil, err
	}
	ok, err := g.svc.Exists(ctx, id)
	if err != nil {
		return nil, toStatus(err)
	}
	return wrapperspb.Bool(ok), nil
}

func (g *GRPCServer) AuthenticateUser(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	f := in.GetFields()
	u, ok, err := g.svc.Authenticate(ctx, f["email"].GetStringValue(), f["password"].GetStringValue())
	if err != nil {
		return nil, toStatus(err)
	}
	out := map[string]any{"ok": ok}
	if ok {
		out["user_id"] = u.ID.String()
	}
	return structpb.NewStruct(out)
}

func parseID(v string) (uuid.UUID, error) {
	id, err := uuid.Parse(v)
	if err != nil {
		return uuid.Nil, status.Error(codes.InvalidArgument, "id must be a UUID")
	}
	return id, nil
}

func userStruct(u *User) (*structpb.Struct, error) {
	return structpb.NewStruct(map[string]any{
		"id":         u.ID.String(),
		"username":   u.Username,
		"email":      u.Email,
		"created_at": u.CreatedAt.UTC().Format(time.RFC3339),
	})
}

// toStatus maps an apperr kind to a gRPC status. Storage details stay on the
// server.
func toStatus(err error) error {
	switch apperr.KindOf(err) {
	case apperr.KindValidation:
		return status.Error(codes.InvalidArgument, err.Error())
	case apperr.KindNotFound:
		return status.Error(codes.NotFound, err.Error())
	case apperr.KindConflict:
		return status.Error(codes.AlreadyExists, err.Error())
	case apperr.KindStorage:
		return status.Error(codes.Unavailable, "storage unavailable")
	default:
		return status.Error(codes.Internal, "internal error")
	}
}

// UnaryLogger logs every call with its code and latency.
func UnaryLogger(log *zap.Logger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		start := time.Now()
		resp, err := handler(ctx, req)
		code := status.Code(err)
		fields := []zap.Field{
			zap.String("method", info.FullMethod),
			zap.String("code", code.String()),
			zap.Duration("latency", time.Since(start)),
		}
		switch code {
		case codes.Internal, codes.Unavailable, codes.Unknown:
			log.Error("grpc", append(fields, zap.Error(err))...)
		default:
			log.Info("grpc", fields...)
		}
		return resp, err
	}
}
