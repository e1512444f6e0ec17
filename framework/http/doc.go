// Package http provides Laravel-compatible request and response helpers and
// the container inspection endpoints.
//
// # Request
//
//	req := gohttp.NewRequest(r)
//
//	var table map[string]map[string]string
//	if err := req.Bind(&table); err != nil { ... }  // JSON body
//
//	exporter := req.Query("exporter", "none")
//	params   := req.QueryList("custom")             // ?custom=a,b&custom=c
//	name     := req.RouteParam("name")
//
// # Response
//
//	res := gohttp.NewResponse(w)
//
//	res.JSON(200, data)           // raw JSON with status
//	res.Success(data)             // 200 {"data": ...}
//	res.Created(data)             // 201 {"data": ...}
//	res.Error(400, "bad input")   // {"message": "bad input"}
//	res.NotFound()                // 404 {"message": "Not found."}
//	res.ServerError()             // 500 {"message": "Server Error."}
//	res.ValidationError(errs)     // 422 {"errors": {"field": ["msg"]}}
//	res.ContainerError(err)       // 404 / 409 / 422 / 500 by error type
//
// # Inspector
//
//	gohttp.NewInspector(types, bindings, c, "config/bindings.yaml", logger).Routes(router)
package http
