package task

// Stats - сводка по коллекции задач
type Stats struct {
	Total          int `json:"total"`
	Pending        int `json:"pending"`
	InProgress     int `json:"inProgress"`
	Completed      int `json:"completed"`
	CompletionRate int `json:"completionRate"`
}

func CollectStats(tasks []*Task) Stats {
	var st Stats
	st.Total = len(tasks)
	for _, t := range tasks {
		switch t.Status {
		case StatusPending:
			st.Pending++
		case StatusInProgress:
			st.InProgress++
		case StatusCompleted:
			st.Completed++
		}
	}
	if st.Total > 0 {
		st.CompletionRate = int(float64(st.Completed)/float64(st.Total)*100 + 0.5)
	}
	return st
}
