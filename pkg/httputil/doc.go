// Package httputil provides response helpers and middleware for the HTTP
// API.
//
// # Responses
//
// [JSON] writes a value as indented JSON. [Error] writes an [ErrorBody] whose
// status is derived from the error code with [StatusFor]:
//
//	if err != nil {
//	    httputil.Error(w, err)
//	    return
//	}
//	httputil.JSON(w, http.StatusOK, summary)
//
// # Middleware
//
// [Observe] reports every request to the registered
// observability.HTTPHooks. [LimitBody] caps request bodies.
package httputil
