// Package scheduler периодически проверяет целостность каталога.
//
// Auditor по cron-расписанию (CATALOG_AUDIT_CRON) запускает catalog.Audit,
// пишет результат в лог и выставляет gauge simplify_catalog_broken_refs.
// Битые ссылки flow → шаг иначе всплыли бы только как 500 на GET /flow/{id}.
//
//	a, err := scheduler.NewAuditor(scheduler.Config{
//	    Flows:  flowRepo,
//	    Steps:  resolver,
//	    Cron:   "@every 10m",
//	    Logger: logger,
//	})
//	go a.Run(ctx)
package scheduler
