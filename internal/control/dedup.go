package control

import "github.com/san-kum/gridsim/internal/network"

// LogSameTypeExistingControllers reports existing controllers of the
// same type whose parameters match those of a controller about to be
// created at index. Without matchingParams no search happens and the
// creation is only logged. Extra options are accepted and ignored so
// callers may pass a superset of recognized options.
func LogSameTypeExistingControllers(net *network.Net, ctrlType TypeSelector, index int,
	matchingParams map[string]any, _ ...any) {
	if matchingParams == nil {
		logger.Info("Creating controller %d of type %s", index, ctrlType.Name)
		logger.Debug("no matching parameters are given to check whether problematic, " +
			"same type controllers already exist.")
		return
	}
	existing := FindControllers(net, Query{Type: ctrlType, Parameters: matchingParams})
	if len(existing) > 0 {
		logger.Info("Controller %d has same type and matching parameters like controllers %v",
			index, existing)
	}
}

// DropSameTypeExistingControllers removes existing controllers of the
// same type whose parameters match those of a controller about to be
// created at index. The removal is unconditional and happens here.
// Without matchingParams nothing is searched or removed.
func DropSameTypeExistingControllers(net *network.Net, ctrlType TypeSelector, index int,
	matchingParams map[string]any, _ ...any) {
	if matchingParams == nil {
		logger.Info("Creating controller %d of type %s, no matching parameters are given "+
			"to check which same type controllers should be dropped.", index, ctrlType.Name)
		return
	}
	existing := FindControllers(net, Query{Type: ctrlType, Parameters: matchingParams})
	if len(existing) > 0 {
		net.Controller().DropRows(existing)
		logger.Debug("Controllers %v got removed because of same type and matching "+
			"parameters as new controller %d.", existing, index)
	}
}
