// Package httpapi exposes the user directory over REST:
//
//	GET    /ping         liveness, {"status":"OK"}
//	POST   /login        {username,password} -> {token,user}
//	GET    /users        every record
//	POST   /users        create (bearer token required)
//	DELETE /users/{id}   delete (bearer token required)
//
// Errors are returned as {"error": "message"}.
package httpapi
