package v1alpha1

import (
	"context"

	"google.golang.org/grpc"

	"github.com/KirkDiggler/rpg-arena/internal/engine/combat"
	"github.com/KirkDiggler/rpg-arena/internal/entities/arena"
)

// ServiceName is the fully qualified admin service name
const ServiceName = "arena.admin.v1alpha1.AdminService"

// GetSessionRequest asks for a session. Empty SessionID means the live session.
type GetSessionRequest struct {
	SessionID string `json:"session_id,omitempty"`
}

// GetSessionResponse carries the session registry
type GetSessionResponse struct {
	Session *arena.Session `json:"session"`
	// Live is false when the session was read from storage
	Live bool `json:"live"`
	// Frame is the last completed simulation frame of the live session
	Frame uint64 `json:"frame,omitempty"`
}

// GetEntityRequest asks for one entity, by id or by the connection controlling it
type GetEntityRequest struct {
	EntityID     string `json:"entity_id,omitempty"`
	ConnectionID string `json:"connection_id,omitempty"`
}

// GetEntityResponse carries the entity view
type GetEntityResponse struct {
	Entity *combat.Snapshot `json:"entity"`
}

// RequestRespawnRequest respawns a connection on an operator's behalf
type RequestRespawnRequest struct {
	ConnectionID string `json:"connection_id"`
}

// RequestRespawnResponse reports the outcome
type RequestRespawnResponse struct {
	Respawned bool   `json:"respawned"`
	EntityID  string `json:"entity_id,omitempty"`
}

// DealDamageRequest hits an entity through the damage pipeline
type DealDamageRequest struct {
	EntityID string  `json:"entity_id"`
	Amount   float64 `json:"amount"`
	SourceID string  `json:"source_id,omitempty"`
}

// DealDamageResponse reports health lost and the entity afterwards
type DealDamageResponse struct {
	Applied float64          `json:"applied"`
	Entity  *combat.Snapshot `json:"entity,omitempty"`
}

// AdminServiceServer is the server API for the admin service
type AdminServiceServer interface {
	GetSession(context.Context, *GetSessionRequest) (*GetSessionResponse, error)
	GetEntity(context.Context, *GetEntityRequest) (*GetEntityResponse, error)
	RequestRespawn(context.Context, *RequestRespawnRequest) (*RequestRespawnResponse, error)
	DealDamage(context.Context, *DealDamageRequest) (*DealDamageResponse, error)
}

// RegisterAdminServiceServer registers srv on s
func RegisterAdminServiceServer(s grpc.ServiceRegistrar, srv AdminServiceServer) {
	s.RegisterService(&AdminServiceDesc, srv)
}

func unaryHandler[Req any, Resp any](
	method string,
	call func(AdminServiceServer, context.Context, *Req) (*Resp, error),
) grpc.MethodHandler {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(Req)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(AdminServiceServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{
			Server:     srv,
			FullMethod: "/" + ServiceName + "/" + method,
		}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(AdminServiceServer), ctx, req.(*Req))
		}
		return interceptor(ctx, in, info, handler)
	}
}

// AdminServiceDesc describes the admin service for grpc.Server
var AdminServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*AdminServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "GetSession",
			Handler:    unaryHandler("GetSession", AdminServiceServer.GetSession),
		},
		{
			MethodName: "GetEntity",
			Handler:    unaryHandler("GetEntity", AdminServiceServer.GetEntity),
		},
		{
			MethodName: "RequestRespawn",
			Handler:    unaryHandler("RequestRespawn", AdminServiceServer.RequestRespawn),
		},
		{
			MethodName: "DealDamage",
			Handler:    unaryHandler("DealDamage", AdminServiceServer.DealDamage),
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "arena/admin/v1alpha1/admin.json",
}

// AdminServiceClient is the client API for the admin service
type AdminServiceClient interface {
	GetSession(ctx context.Context, in *GetSessionRequest, opts ...grpc.CallOption) (*GetSessionResponse, error)
	GetEntity(ctx context.Context, in *GetEntityRequest, opts ...grpc.CallOption) (*GetEntityResponse, error)
	RequestRespawn(ctx context.Context, in *RequestRespawnRequest, opts ...grpc.CallOption) (*RequestRespawnResponse, error)
	DealDamage(ctx context.Context, in *DealDamageRequest, opts ...grpc.CallOption) (*DealDamageResponse, error)
}

type adminServiceClient struct {
	cc grpc.ClientConnInterface
}

// NewAdminServiceClient creates a client that always speaks the JSON codec
func NewAdminServiceClient(cc grpc.ClientConnInterface) AdminServiceClient {
	return &adminServiceClient{cc: cc}
}

func (c *adminServiceClient) invoke(ctx context.Context, method string, in, out any, opts []grpc.CallOption) error {
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
	return c.cc.Invoke(ctx, "/"+ServiceName+"/"+method, in, out, opts...)
}

func (c *adminServiceClient) GetSession(ctx context.Context, in *GetSessionRequest, opts ...grpc.CallOption) (*GetSessionResponse, error) {
	out := new(GetSessionResponse)
	if err := c.invoke(ctx, "GetSession", in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *adminServiceClient) GetEntity(ctx context.Context, in *GetEntityRequest, opts ...grpc.CallOption) (*GetEntityResponse, error) {
	out := new(GetEntityResponse)
	if err := c.invoke(ctx, "GetEntity", in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *adminServiceClient) RequestRespawn(ctx context.Context, in *RequestRespawnRequest, opts ...grpc.CallOption) (*RequestRespawnResponse, error) {
	out := new(RequestRespawnResponse)
	if err := c.invoke(ctx, "RequestRespawn", in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *adminServiceClient) DealDamage(ctx context.Context, in *DealDamageRequest, opts ...grpc.CallOption) (*DealDamageResponse, error) {
	out := new(DealDamageResponse)
	if err := c.invoke(ctx, "DealDamage", in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}
