// Package errors is the arena's structured error type.
//
// Every layer returns *Error values carrying a Code. Repositories report
// NotFound, orchestrators and the engine report InvalidArgument for bad input
// and FailedPrecondition for requests the current state forbids (a stunned
// caster, an ability on cooldown). Wrapping keeps the innermost code so the
// edge can map it without knowing where it came from:
//
//	out, err := repo.Get(ctx, &sessions.GetInput{SessionID: id})
//	if err != nil {
//	    return nil, errors.Wrapf(err, "failed to load session %s", id)
//	}
//
// Config validation collects every problem before failing:
//
//	vb := errors.NewValidationBuilder()
//	if c.Spawner == nil {
//	    vb.RequiredField("Spawner")
//	}
//	return vb.Build()
//
// The websocket hub reports GetCode and GetMessage back to the player. The
// admin gRPC handlers return ToGRPCError, which sets the status code and
// attaches the code and field violations as errdetails.
package errors
