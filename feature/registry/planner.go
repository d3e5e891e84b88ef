package registry

// PlanPages derives the number of pages to fetch from the total the source
// reported on page 1, capped by maxPages. The cap is the safety net against
// a wrong or hostile total: the job never schedules more fetches than it,
// no matter what the source claims. A non-positive total plans zero pages,
// meaning only the already-fetched first page is processed.
func PlanPages(totalReported, pageSize, maxPages int) int {
	if totalReported <= 0 || pageSize <= 0 {
		return 0
	}
	pages := (totalReported + pageSize - 1) / pageSize
	if maxPages > 0 && pages > maxPages {
		return maxPages
	}
	return pages
}
