// Package recommend подбирает flow по ответам анкеты.
//
// Правила — упорядоченный список пар (условие, исход). Срабатывает первое
// правило, условие которого выполнено; дальше правила не проверяются.
// Исход правила — список кандидатов в порядке предпочтения: возвращается
// первый кандидат, присутствующий в текущем каталоге. Если ни одного нет,
// возвращается результат "нет совпадения" с уверенностью low.
//
// Таблица правил по умолчанию встроена (DefaultRules), но может быть
// задана документом rules/immigration/eligibility.yaml (RulesFromDocument).
package recommend
