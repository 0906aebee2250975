package beamfx

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/uuid"
)

type AssetId string

// MeshAsset is one triangle mesh handed off to the rendering collaborator.
// Vertices may change in place every tick. Version changes only when the
// buffers are replaced wholesale, which is the renderer's cue that normals
// and indices need re-uploading too; between version bumps both stay
// stable and only vertex contents move.
type MeshAsset struct {
	Version  uint
	Vertices []mgl32.Vec3
	Normals  []mgl32.Vec3
	Indices  []uint32
}

type AssetServer struct {
	meshes map[AssetId]*MeshAsset
}

type AssetServerModule struct{}

func (AssetServerModule) Install(app *App, cmd *Commands) {
	app.addResources(&AssetServer{
		meshes: make(map[AssetId]*MeshAsset),
	})
}

// CreateMesh registers an empty mesh asset and returns its id.
func (server *AssetServer) CreateMesh() AssetId {
	id := makeAssetId()
	server.meshes[id] = &MeshAsset{}
	return id
}

// Mesh looks up a mesh asset. The returned asset is read-only for the
// caller; the owning simulation rewrites it between reads.
func (server *AssetServer) Mesh(id AssetId) (*MeshAsset, bool) {
	mesh, ok := server.meshes[id]
	return mesh, ok
}

// SetMeshBuffers points a mesh asset at new backing buffers and bumps its
// version. The slices are shared, not copied: subsequent in-place vertex
// updates are visible through the asset without another call.
func (server *AssetServer) SetMeshBuffers(id AssetId, vertices, normals []mgl32.Vec3, indices []uint32) {
	mesh, ok := server.meshes[id]
	if !ok {
		return
	}
	mesh.Vertices = vertices
	mesh.Normals = normals
	mesh.Indices = indices
	mesh.Version++
}

// ReleaseMesh drops a mesh asset, e.g. when its emitter entity dies.
func (server *AssetServer) ReleaseMesh(id AssetId) {
	delete(server.meshes, id)
}

func makeAssetId() AssetId {
	return AssetId(uuid.NewString())
}
