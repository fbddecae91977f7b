// Package environment carries the deployment environment (development,
// staging or production) through request contexts and log records.
//
//	env := environment.Parse(os.Getenv("APP_ENV"))
//	r.Use(environment.Middleware(env))
//
//	if environment.IsProduction(r.Context()) {
//		// secure cookies only
//	}
package environment
