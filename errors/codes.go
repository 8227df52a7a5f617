package errors

import (
	"google.golang.org/grpc/codes"
)

// Code identifies the broad category of an error. The numeric values mirror
// the gRPC status codes so that an Error can round-trip through a
// *status.Status without translation.
type Code uint32

const (
	OK                 Code = Code(codes.OK)
	Canceled           Code = Code(codes.Canceled)
	Unknown            Code = Code(codes.Unknown)
	InvalidArgument    Code = Code(codes.InvalidArgument)
	DeadlineExceeded   Code = Code(codes.DeadlineExceeded)
	NotFound           Code = Code(codes.NotFound)
	AlreadyExists      Code = Code(codes.AlreadyExists)
	PermissionDenied   Code = Code(codes.PermissionDenied)
	ResourceExhausted  Code = Code(codes.ResourceExhausted)
	FailedPrecondition Code = Code(codes.FailedPrecondition)
	Aborted            Code = Code(codes.Aborted)
	OutOfRange         Code = Code(codes.OutOfRange)
	Unimplemented      Code = Code(codes.Unimplemented)
	Internal           Code = Code(codes.Internal)
	Unavailable        Code = Code(codes.Unavailable)
	DataLoss           Code = Code(codes.DataLoss)
	Unauthenticated    Code = Code(codes.Unauthenticated)
)

func (c Code) String() string {
	return codes.Code(c).String()
}

// GRPC returns the equivalent gRPC status code.
func (c Code) GRPC() codes.Code {
	return codes.Code(c)
}
