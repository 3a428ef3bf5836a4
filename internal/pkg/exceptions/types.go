package exceptions

import (
	"fmt"
	"smartrx-service/internal/pkg/constvars"
)

var (
	ErrCannotMarshalJSON = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevCannotMarshalJSON)
	}
	ErrServerDeadlineExceeded = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusGatewayTimeout, constvars.ErrClientServerLongRespond, constvars.ErrDevServerDeadlineExceeded)
	}
	ErrBuildRequest = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevBuildRequest)
	}
	ErrRenderTemplate = func(err error, name string) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, fmt.Sprintf(constvars.ErrDevRenderTemplate, name))
	}
)

// launch and authorization
var (
	ErrLaunchSequence = func(err error, devMessage string) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientLaunchSequenceAborted, devMessage).WithKind(ErrKindLaunchSequence)
	}
	ErrCallbackValidation = func(err error, devMessage string) *CustomError {
		return BuildNewCustomError(err, constvars.StatusBadRequest, constvars.ErrClientAuthorizationRejected, devMessage).WithKind(ErrKindCallbackValidation)
	}
	ErrTokenExchange = func(err error, tokenURI string) *CustomError {
		return BuildNewCustomError(err, constvars.StatusBadGateway, constvars.ErrClientAuthorizationFailed, fmt.Sprintf(constvars.ErrDevTokenExchangeFailed, tokenURI)).WithKind(ErrKindTokenExchange)
	}
	ErrTokenExchangeTimeout = func(err error, tokenURI string) *CustomError {
		return BuildNewCustomError(err, constvars.StatusGatewayTimeout, constvars.ErrClientServerLongRespond, fmt.Sprintf(constvars.ErrDevTokenExchangeTimeout, tokenURI)).WithKind(ErrKindTokenExchange)
	}
	ErrSmartDiscovery = func(err error, iss string) *CustomError {
		return BuildNewCustomError(err, constvars.StatusBadGateway, constvars.ErrClientEHRUnavailable, fmt.Sprintf(constvars.ErrDevSmartDiscoveryFailed, iss)).WithKind(ErrKindLaunchSequence)
	}
)

// FHIR resource access
var (
	ErrGetFHIRResource = func(err error, resourceType, url string) *CustomError {
		return BuildNewCustomError(err, constvars.StatusBadGateway, constvars.ErrClientEHRUnavailable, fmt.Sprintf(constvars.ErrDevFHIRGetResource, resourceType, url)).WithKind(ErrKindResourceFetch)
	}
	ErrDecodeFHIRResource = func(err error, resourceType string) *CustomError {
		return BuildNewCustomError(err, constvars.StatusBadGateway, constvars.ErrClientEHRUnavailable, fmt.Sprintf(constvars.ErrDevFHIRDecodeResource, resourceType)).WithKind(ErrKindResourceFetch)
	}
	ErrFHIRTimeout = func(err error, resourceType string) *CustomError {
		return BuildNewCustomError(err, constvars.StatusGatewayTimeout, constvars.ErrClientServerLongRespond, fmt.Sprintf(constvars.ErrDevFHIRTimeout, resourceType)).WithKind(ErrKindResourceFetch)
	}
	ErrFHIRRateLimited = func(err error, host string) *CustomError {
		return BuildNewCustomError(err, constvars.StatusServiceUnavailable, constvars.ErrClientEHRUnavailable, fmt.Sprintf(constvars.ErrDevFHIRRateLimited, host)).WithKind(ErrKindResourceFetch)
	}
)

// browser session
var (
	ErrSessionMissing = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevSessionMissing).WithKind(ErrKindSession)
	}
	ErrSessionTokenInvalid = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusUnauthorized, constvars.ErrClientSessionInvalid, constvars.ErrDevSessionTokenInvalid).WithKind(ErrKindSession)
	}
	ErrSessionGenerateToken = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevSessionGenerateToken).WithKind(ErrKindSession)
	}
	ErrSessionDecodeState = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientSessionInvalid, constvars.ErrDevSessionDecodeState).WithKind(ErrKindSession)
	}
)

// redis
var (
	ErrRedisDelete = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevRedisDeleteData)
	}
	ErrRedisHashSet = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevRedisHashSet)
	}
	ErrRedisHashGet = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevRedisHashGet)
	}
	ErrRedisExpire = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevRedisExpire)
	}
)

// mongodb
var (
	ErrMongoDBFindDocument = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevDBFailedToFindDocument)
	}
	ErrMongoDBUpsertDocument = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevDBFailedToUpsertDocument)
	}
	ErrMongoDBDeleteDocument = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevDBFailedToDeleteDocument)
	}
)
