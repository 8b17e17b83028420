// @title           FinanceFlow API
// @version         1.0
// @description     Financial plans catalogue, plan applications, investment advice and the admin back office.
// @contact.name    FinanceFlow support
// @contact.email   support@financeflow.local
// @license.name    MIT
// @license.url     https://opensource.org/licenses/MIT
// @host            localhost:8080
// @BasePath        /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

package main

import (
	_ "financeflow_backend/docs"
	"financeflow_backend/internal/app"
)

func main() {
	app.Run()
}
