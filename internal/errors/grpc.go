package errors

import (
	"sort"

	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Domain identifies arena errors in errdetails.ErrorInfo
const Domain = "rpg-arena"

// ToGRPCError converts err into a gRPC status error. Status errors pass
// through unchanged and foreign errors become Internal. An *Error carries its
// code and metadata as ErrorInfo and its field violations as BadRequest.
func ToGRPCError(err error) error {
	if err == nil {
		return nil
	}
	if _, ok := status.FromError(err); ok {
		return err
	}

	var e *Error
	if !As(err, &e) {
		return status.Error(codes.Internal, err.Error())
	}

	st := status.New(e.Code.GRPCCode(), e.Message)
	info := &errdetails.ErrorInfo{
		Reason:   e.Code.String(),
		Domain:   Domain,
		Metadata: e.Meta,
	}

	var withDetails *status.Status
	var detailErr error
	if len(e.Fields) > 0 {
		withDetails, detailErr = st.WithDetails(info, badRequest(e.Fields))
	} else {
		withDetails, detailErr = st.WithDetails(info)
	}
	if detailErr != nil {
		return st.Err()
	}
	return withDetails.Err()
}

// FromGRPCError turns a status error back into an *Error. Errors that are not
// statuses are returned as is.
func FromGRPCError(err error) error {
	if err == nil {
		return nil
	}
	st, ok := status.FromError(err)
	if !ok {
		return err
	}

	e := &Error{
		Code:    codeFromGRPC(st.Code()),
		Message: st.Message(),
	}
	for _, detail := range st.Details() {
		switch d := detail.(type) {
		case *errdetails.ErrorInfo:
			if d.GetDomain() == Domain && d.GetReason() != "" {
				e.Code = Code(d.GetReason())
			}
			if len(d.GetMetadata()) > 0 {
				e.Meta = d.GetMetadata()
			}
		case *errdetails.BadRequest:
			e.Fields = make(map[string][]string, len(d.GetFieldViolations()))
			for _, v := range d.GetFieldViolations() {
				e.Fields[v.GetField()] = append(e.Fields[v.GetField()], v.GetDescription())
			}
		}
	}
	return e
}

func badRequest(fields map[string][]string) *errdetails.BadRequest {
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)

	br := &errdetails.BadRequest{}
	for _, name := range names {
		for _, msg := range fields[name] {
			br.FieldViolations = append(br.FieldViolations, &errdetails.BadRequest_FieldViolation{
				Field:       name,
				Description: msg,
			})
		}
	}
	return br
}
