// Package worker ведёт журнал доменных событий.
//
// Worker потребляет очередь events.audit (flow.recommended, progress.saved,
// progress.deleted) и записывает каждое событие в таблицу events.
// Повторная доставка того же сообщения не создаёт дубль: ID сообщения
// является первичным ключом.
//
//	w := worker.New(worker.Config{
//	    Conn:   mqConn,
//	    Events: repo.NewEventRepo(pool),
//	    Logger: logger,
//	})
//	if err := w.Start(ctx); err != nil {
//	    return err
//	}
//	defer w.Stop()
//
// Журнал доступен через HTTP: GET /events?flow_id=...&type=...&limit=...
package worker
