package handlers

import "github.com/gin-gonic/gin"

const indexHTML = `<!doctype html>
<html lang="en">
  <head>
    <meta charset="utf-8" />
    <title>ClickFit API</title>
  </head>
  <body>
    <h1>ClickFit Server is Running!</h1>
    <h2>Available Endpoints:</h2>

    <h3>File Upload:</h3>
    <ul>
      <li>POST /upload - Upload images</li>
      <li>GET /images - List uploaded images</li>
      <li>GET /upload_images/:filename - Access uploaded images</li>
    </ul>

    <h3>User Management API:</h3>
    <ul>
      <li>POST /api/users - Create new user</li>
      <li>GET /api/users - Get all users (with filters: ?type=admin&amp;active=true)</li>
      <li>GET /api/users/:id - Get user by ID</li>
      <li>PUT /api/users/:id - Update user</li>
      <li>DELETE /api/users/:id - Deactivate user</li>
      <li>GET /api/users/type/:type - Get users by type (admin/trainer/member)</li>
      <li>POST /api/login - User login</li>
      <li>GET /api/stats - Database statistics</li>
    </ul>
  </body>
</html>`

func Index(ctx *gin.Context) {
	ctx.Data(200, "text/html; charset=utf-8", []byte(indexHTML))
}
