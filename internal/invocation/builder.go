package invocation

import (
	"errors"
	"path/filepath"

	"calibtool/internal/config"
	"calibtool/internal/fileutil"
)

// Tools names the executables behind each operation.
type Tools struct {
	Capture         string
	CapturePoses    string
	Split           string
	Calibrate       string
	StereoCalibrate string
	Undistort       string
	UndistortStereo string
}

// ToolsFromConfig resolves the configured executables, honouring tools.dir.
func ToolsFromConfig(cfg *config.Config) Tools {
	return Tools{
		Capture:         cfg.ToolPath(cfg.Tools.Capture),
		CapturePoses:    cfg.ToolPath(cfg.Tools.CapturePoses),
		Split:           cfg.ToolPath(cfg.Tools.Split),
		Calibrate:       cfg.ToolPath(cfg.Tools.Calibrate),
		StereoCalibrate: cfg.ToolPath(cfg.Tools.StereoCalibrate),
		Undistort:       cfg.ToolPath(cfg.Tools.Undistort),
		UndistortStereo: cfg.ToolPath(cfg.Tools.UndistortStereo),
	}
}

// Builder maps operations and their parameters onto invocations. It performs
// no validation: values are forwarded verbatim and the external tools decide
// what they accept.
type Builder struct {
	tools Tools
}

// NewBuilder constructs a builder for the provided executables.
func NewBuilder(tools Tools) *Builder {
	return &Builder{tools: tools}
}

// Tools returns the executables the builder targets.
func (b *Builder) Tools() Tools {
	return b.tools
}

// Capture records video from the left and right camera ports.
func (b *Builder) Capture(framerate, portLeft, portRight string) Invocation {
	return b.build(OperationCapture, b.tools.Capture, framerate, portLeft, portRight)
}

// CaptureWithPoses records video like Capture while the tracker loaded from
// romPath logs a pose per frame.
func (b *Builder) CaptureWithPoses(framerate, portLeft, portRight, romPath string) Invocation {
	return b.build(OperationCapturePoses, b.tools.CapturePoses, framerate, portLeft, portRight, romPath)
}

// SplitOptions carries the optional split arguments.
type SplitOptions struct {
	// PoseFile is replayed alongside the video when non-empty.
	PoseFile string
	// PassOutputDir appends the output directory as the last argument. ReadVid
	// takes its second argument as the pose file, so the two are exclusive.
	PassOutputDir bool
}

// Validate reports option combinations the splitter would misread.
func (o SplitOptions) Validate() error {
	if o.PoseFile != "" && o.PassOutputDir {
		return errors.New("pose file and output directory forwarding cannot be combined")
	}
	return nil
}

// SplitPlan is the two-step split operation: create the output directory,
// then run the splitter.
type SplitPlan struct {
	OutputDir  string
	Invocation Invocation
}

// Prepare creates the output directory, resolving a relative OutputDir
// against workDir. Calling it again for an existing directory is not an error.
func (p SplitPlan) Prepare(workDir string) error {
	dir := p.OutputDir
	if workDir != "" && dir != "" && !filepath.IsAbs(dir) {
		dir = filepath.Join(workDir, dir)
	}
	return fileutil.EnsureDir(dir)
}

// Split plays back sourcePath and saves split frames into outputDir.
func (b *Builder) Split(sourcePath, outputDir string) SplitPlan {
	return b.SplitWithOptions(sourcePath, outputDir, SplitOptions{})
}

// SplitWithOptions is Split with the optional pose file and output directory
// forwarding.
func (b *Builder) SplitWithOptions(sourcePath, outputDir string, opts SplitOptions) SplitPlan {
	args := []string{sourcePath}
	if opts.PoseFile != "" {
		args = append(args, opts.PoseFile)
	}
	if opts.PassOutputDir {
		args = append(args, outputDir)
	}
	return SplitPlan{
		OutputDir:  outputDir,
		Invocation: b.build(OperationSplit, b.tools.Split, args...),
	}
}

// Calibrate computes single camera intrinsics from settingsFile into outputFile.
func (b *Builder) Calibrate(settingsFile, outputFile string, camera Camera) Invocation {
	return b.build(OperationCalibrate, b.tools.Calibrate, settingsFile, outputFile, string(camera))
}

// StereoCalibrate computes the stereo extrinsics from settingsFile into outputFile.
func (b *Builder) StereoCalibrate(settingsFile, outputFile string) Invocation {
	return b.build(OperationStereoCalibrate, b.tools.StereoCalibrate, settingsFile, outputFile)
}

// Undistort rectifies a single camera video with its calibration file.
func (b *Builder) Undistort(inputFile, outputFile, calibrationFile string) Invocation {
	return b.build(OperationUndistort, b.tools.Undistort, inputFile, outputFile, calibrationFile)
}

// UndistortStereo rectifies a side-by-side stereo video with both calibrations.
func (b *Builder) UndistortStereo(inputFile, outputFile, leftCalibration, rightCalibration string) Invocation {
	return b.build(OperationUndistortStereo, b.tools.UndistortStereo, inputFile, outputFile, leftCalibration, rightCalibration)
}

func (b *Builder) build(op Operation, executable string, args ...string) Invocation {
	return Invocation{
		Operation:  op,
		Executable: executable,
		Args:       append([]string{}, args...),
	}
}
