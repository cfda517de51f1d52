// Package http provides the request and response values handed to
// container-dispatched controller actions.
//
//	func (c *UserController) Show(req *gohttp.Request, res *gohttp.Response, id string) {
//	    if req.IsJSON() { ... }
//	    res.Success(c.users.Find(id))
//	}
//
// An action may also skip Response and return a value (rendered as
// 200 {"data": ...}) or an error (rendered as 500 {"message": ...}).
//
// # Request
//
//	name  := req.Input("name", "default")
//	page  := req.Query("page", "1")
//	id    := req.RouteParam("id")
//	token := req.BearerToken()
//	err   := req.Bind(&payload)   // JSON body, or form through json tags
//
// # Response
//
//	res.JSON(200, data)           // raw JSON with status
//	res.Success(data)             // 200 {"data": ...}
//	res.Created(data)             // 201 {"data": ...}
//	res.NoContent()               // 204
//	res.Error(400, "bad input")   // {"message": "bad input"}
//	res.Unauthorized()            // 401 {"message": "Unauthenticated."}
//	res.NotFound()                // 404 {"message": "Not found."}
package http
